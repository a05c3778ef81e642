package wix

import (
	_ "embed"
	"io"
)

//go:embed assets/main.wxs
var template []byte

// Template returns the example WiX source document. It expects the
// six preprocessor variables candle is invoked with (Version,
// Platform, ProductName, BinaryName, Description, Author) and is
// meant to be dropped into wix/main.wxs and edited from there.
func Template() []byte {
	return template
}

// PrintTemplate writes the example WiX source to w, byte for byte.
func PrintTemplate(w io.Writer) error {
	if _, err := w.Write(template); err != nil {
		return ioError("writing template", err)
	}
	return nil
}

package wix

// Platform is the target the installer is produced for. Windows
// installers only come in two flavors.
type Platform int

const (
	X86 Platform = iota
	X64
)

// PlatformForArch maps a GOARCH style architecture name to a
// Platform. Anything that isn't amd64 builds the 32bit installer,
// which matches how the WiX toolset treats unknown architectures.
func PlatformForArch(goarch string) Platform {
	if goarch == "amd64" {
		return X64
	}
	return X86
}

// Arch is the architecture tag used in the installer filename.
func (p Platform) Arch() string {
	if p == X64 {
		return "x86_64"
	}
	return "i686"
}

// String is the short name candle expects in the Platform variable.
func (p Platform) String() string {
	if p == X64 {
		return "x64"
	}
	return "x86"
}

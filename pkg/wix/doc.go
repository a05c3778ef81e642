/*
Package wix turns a cargo project's release binary into a Windows
Installer (msi) by driving the WiX toolset.

The pipeline has four steps, each one external tool:

 1. `cargo build --release` produces the binary
 2. `candle` compiles wix/main.wxs into a wixobj, with the package
    metadata from Cargo.toml passed in as preprocessor variables
 3. `light` links the wixobj into target/wix/<name>-<version>-<arch>.msi
 4. `signtool sign /a` signs the msi (optional)

Steps run strictly in order and the first failure wins. Every failure
maps to a stable exit code via Error.Code, so a wrapping CLI can pass
it straight to os.Exit.

This package does not install or locate the WiX toolset; candle,
light, and signtool are expected to be on PATH.

References

 1. http://wixtoolset.org/
*/
package wix

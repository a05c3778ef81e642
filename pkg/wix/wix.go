package wix

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/go-kit/kit/log/level"
	"github.com/juliusl/cargo-wix/pkg/contexts/ctxlog"
	"go.opencensus.io/trace"
)

const (
	buildTool = "cargo"
	compiler  = "candle"
	linker    = "light"
	signtool  = "signtool"
)

type wixTool struct {
	manifestPath    string // where Cargo.toml lives
	workDir         string // directory the child processes run in
	platform        Platform
	sign            bool   // run signtool after linking
	captureOutput   bool   // discard child stdout/stderr instead of inheriting
	timestampServer string // optional /t argument for signtool

	execCC func(context.Context, string, ...string) *exec.Cmd // Allows test overrides
}

type Option func(*wixTool)

// Sign enables the signtool stage after a successful link.
func Sign() Option {
	return func(wt *wixTool) {
		wt.sign = true
	}
}

// NoCapture lets the child processes inherit stdout and stderr. The
// default is to silence them, which keeps the cargo and WiX output
// out of the way unless someone is debugging a failure.
func NoCapture() Option {
	return func(wt *wixTool) {
		wt.captureOutput = false
	}
}

func WithManifest(path string) Option {
	return func(wt *wixTool) {
		wt.manifestPath = path
	}
}

func WithWorkDir(path string) Option {
	return func(wt *wixTool) {
		wt.workDir = path
	}
}

func WithPlatform(p Platform) Option {
	return func(wt *wixTool) {
		wt.platform = p
	}
}

// WithTimestampServer adds a timestamp authority to the signing
// invocation, so signatures outlive the certificate.
func WithTimestampServer(url string) Option {
	return func(wt *wixTool) {
		wt.timestampServer = url
	}
}

// New returns a tool ready to produce an installer out of the package
// in the working directory.
func New(opts ...Option) *wixTool {
	wt := &wixTool{
		manifestPath:  ManifestFile,
		workDir:       ".",
		platform:      PlatformForArch(runtime.GOARCH),
		captureOutput: true,

		execCC: exec.CommandContext,
	}

	for _, opt := range opts {
		opt(wt)
	}

	return wt
}

// paths are the three artifacts the pipeline touches, in order: the
// WiX source, the compiled object, and the installer itself.
type paths struct {
	mainWxs    string
	mainWixobj string
	msi        string
}

func installerPaths(m *Manifest, platform Platform) paths {
	return paths{
		mainWxs:    filepath.Join("wix", "main.wxs"),
		mainWixobj: filepath.Join("target", "wix", "build", "main.wixobj"),
		// The version already contains periods, so the msi name is
		// assembled as one literal string. Splicing an extension onto
		// it would eat the patch version.
		msi: filepath.Join("target", "wix", m.Name+"-"+m.Version+"-"+platform.Arch()+".msi"),
	}
}

// Run drives the whole pipeline: read the manifest, build the release
// binary, compile and link the installer, and optionally sign it.
// It stops at the first stage that fails.
func (wt *wixTool) Run(ctx context.Context) error {
	ctx, span := trace.StartSpan(ctx, "wix.Run")
	defer span.End()

	logger := ctxlog.FromContext(ctx)

	level.Debug(logger).Log("msg", "reading manifest", "path", wt.manifestPath)
	manifest, err := ReadManifest(wt.manifestPath)
	if err != nil {
		return err
	}

	level.Debug(logger).Log(
		"msg", "manifest fields",
		"name", manifest.Name,
		"version", manifest.Version,
		"bin", manifest.BinName,
		"platform", wt.platform,
	)

	// The MSI ProductVersion wants a numeric x.y.z, so a version that
	// doesn't parse is worth flagging even though the pipeline will
	// happily pass it along.
	if _, err := semver.NewVersion(manifest.Version); err != nil {
		level.Warn(logger).Log(
			"msg", "package version is not semver, the installer version may be rejected",
			"version", manifest.Version,
		)
	}

	p := installerPaths(manifest, wt.platform)

	if err := os.MkdirAll(filepath.Join(wt.workDir, filepath.Dir(p.mainWixobj)), 0755); err != nil {
		return ioError("creating build directory", err)
	}

	level.Info(logger).Log("msg", "building release binary")
	if err := wt.runStage(ctx, KindBuild, "failed to build the release binary",
		buildTool, buildArgs()...); err != nil {
		return err
	}

	level.Info(logger).Log("msg", "compiling installer")
	if err := wt.runStage(ctx, KindCompile, "failed to compile the installer",
		compiler, compileArgs(manifest, wt.platform, p)...); err != nil {
		return err
	}

	level.Info(logger).Log("msg", "linking installer")
	if err := wt.runStage(ctx, KindLink, "failed to link the installer",
		linker, linkArgs(p)...); err != nil {
		return err
	}

	if wt.sign {
		level.Info(logger).Log("msg", "signing installer")
		if err := wt.runStage(ctx, KindSign, "failed to sign the installer",
			signtool, signArgs(p, wt.timestampServer)...); err != nil {
			return err
		}
	}

	level.Info(logger).Log("msg", "created installer", "path", p.msi)

	return nil
}

func buildArgs() []string {
	return []string{"build", "--release"}
}

func compileArgs(m *Manifest, platform Platform, p paths) []string {
	return []string{
		"-dVersion=" + m.Version,
		"-dPlatform=" + platform.String(),
		"-dProductName=" + m.Name,
		"-dBinaryName=" + m.BinName,
		"-dDescription=" + m.Description,
		"-dAuthor=" + m.Author,
		"-o", p.mainWixobj,
		p.mainWxs,
	}
}

func linkArgs(p paths) []string {
	return []string{
		"-ext", "WixUIExtension",
		"-cultures:en-us",
		p.mainWixobj,
		"-out", p.msi,
	}
}

func signArgs(p paths, timestampServer string) []string {
	args := []string{"sign", "/a"}

	if timestampServer != "" {
		args = append(args, "/t", timestampServer)
	}

	return append(args, p.msi)
}

// runStage spawns one external tool and waits for it. A non-zero exit
// becomes the stage's error kind; a process that can't be spawned at
// all becomes an Io error rather than being ignored.
func (wt *wixTool) runStage(ctx context.Context, kind Kind, msg string, argv0 string, args ...string) error {
	logger := ctxlog.FromContext(ctx)

	cmd := wt.execCC(ctx, argv0, args...)
	cmd.Dir = wt.workDir

	if !wt.captureOutput {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	level.Debug(logger).Log(
		"msg", "execing",
		"cmd", strings.Join(cmd.Args, " "),
	)

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return newError(kind, msg)
		}
		return ioError("spawning "+argv0, err)
	}

	return nil
}

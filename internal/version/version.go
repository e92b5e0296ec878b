package version

// Version is overridden at build time with -ldflags "-X github.com/bnema/ctxsim/internal/version.Version=...".
var Version = "dev"

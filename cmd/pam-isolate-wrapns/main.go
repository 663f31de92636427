// Command pam-isolate-wrapns is a setuid-root re-exec wrapper modeled on
// the original wrapns binary: it resolves the invoking user, escalates to
// root long enough to provision that user's namespaces, drops privileges
// back permanently, and execve's the requested command inside them.
//
// It demonstrates the C7 coordinator end-to-end without requiring a real
// PAM stack: a system administrator can install this setuid-root and run
// `pam-isolate-wrapns -- some-command args...` as an ordinary user.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/coder/serpent"

	"github.com/uberspace/pam-isolate/environment"
	"github.com/uberspace/pam-isolate/internal/config"
	"github.com/uberspace/pam-isolate/internal/logging"
	"github.com/uberspace/pam-isolate/internal/provision"
	"github.com/uberspace/pam-isolate/internal/sysctl"
	"github.com/uberspace/pam-isolate/internal/userenv"
	"github.com/uberspace/pam-isolate/privilege"
	"github.com/uberspace/pam-isolate/util"
)

func main() {
	cmd := newCommand()
	if err := cmd.Invoke().WithOS().Run(); err != nil {
		fmt.Fprintln(os.Stderr, "pam-isolate-wrapns:", err)
		os.Exit(1)
	}
}

func newCommand() *serpent.Command {
	var configPath serpent.String
	var logLevel serpent.String

	return &serpent.Command{
		Use:   "pam-isolate-wrapns [flags] -- command [args...]",
		Short: "Provision the caller's network/mount namespaces, then exec a command inside them.",
		Options: []serpent.Option{
			{
				Flag:        "config",
				Env:         "PAM_ISOLATE_CONFIG",
				Description: "Path to the pam_isolate TOML config.",
				Default:     config.DefaultPath,
				Value:       &configPath,
			},
			{
				Flag:        "log-level",
				Env:         "PAM_ISOLATE_LOG_LEVEL",
				Description: "Override the configured log level (error, warn, info, debug).",
				Value:       &logLevel,
			},
		},
		Handler: func(inv *serpent.Invocation) error {
			if len(inv.Args) == 0 {
				return fmt.Errorf("pass a command to execute after --")
			}
			return run(configPath.Value(), logLevel.Value(), inv.Args)
		},
	}
}

func run(configPath, logLevelOverride string, command []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if logLevelOverride != "" {
		cfg.LogLevel = logLevelOverride
	}

	logger, err := logging.New(cfg.LogLevel, "")
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}

	ids := environment.Current()

	identity, err := util.LookupUID(ids.RealUID)
	if err != nil {
		return fmt.Errorf("resolving caller identity: %w", err)
	}

	if cfg.IsIgnored(identity.Name) {
		return fmt.Errorf("user %q is ignored by configuration", identity.Name)
	}

	if err := privilege.SwitchTo(ids.EffectiveUID, ids.EffectiveGID); err != nil {
		return fmt.Errorf("escalating to root: %w", err)
	}

	provisionErr := provision.Provision(
		provision.Identity{Name: identity.Name, UID: identity.UID, GID: identity.GID},
		cfg,
		userenv.OSMutator,
	)

	if provisionErr == nil {
		sysctl.Apply(cfg.Sysctl, logger)
	}

	if err := privilege.SwitchTo(ids.RealUID, ids.RealGID); err != nil {
		return fmt.Errorf("dropping privileges: %w", err)
	}

	if provisionErr != nil {
		return fmt.Errorf("provisioning namespaces: %w", provisionErr)
	}

	logger.Info("provisioned namespaces, executing command", "user", identity.Name, "command", command[0])

	return syscall.Exec(lookPath(command[0]), command, os.Environ())
}

// lookPath resolves name against PATH, falling back to name itself (e.g.
// when it is already absolute or exec will simply fail with ENOENT).
func lookPath(name string) string {
	if path, err := exec.LookPath(name); err == nil {
		return path
	}
	return name
}

// Command pam-isolate-pamtest fakes a PAM open_session call: it runs the
// C7 coordinator for a named user and reports the environment marker it
// would publish, without requiring libpam or any privilege transition. It
// is meant to be run as root against a development box to exercise the
// provisioning coordinator directly.
package main

import (
	"fmt"
	"os"

	"github.com/coder/serpent"

	"github.com/uberspace/pam-isolate/internal/config"
	"github.com/uberspace/pam-isolate/internal/logging"
	"github.com/uberspace/pam-isolate/internal/provision"
	"github.com/uberspace/pam-isolate/internal/sysctl"
	"github.com/uberspace/pam-isolate/util"
)

func main() {
	cmd := newCommand()
	if err := cmd.Invoke().WithOS().Run(); err != nil {
		fmt.Fprintln(os.Stderr, "pam-isolate-pamtest:", err)
		os.Exit(1)
	}
}

func newCommand() *serpent.Command {
	var configPath serpent.String
	var username serpent.String

	return &serpent.Command{
		Use:   "pam-isolate-pamtest --user <name>",
		Short: "Run the namespace provisioning coordinator once, as a fake PAM open_session.",
		Options: []serpent.Option{
			{
				Flag:        "config",
				Env:         "PAM_ISOLATE_CONFIG",
				Description: "Path to the pam_isolate TOML config.",
				Default:     config.DefaultPath,
				Value:       &configPath,
			},
			{
				Flag:        "user",
				Description: "Username to provision namespaces for.",
				Value:       &username,
			},
		},
		Handler: func(inv *serpent.Invocation) error {
			if username.Value() == "" {
				return fmt.Errorf("--user is required")
			}
			return run(configPath.Value(), username.Value())
		},
	}
}

func run(configPath, name string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, "")
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}

	identity, err := util.LookupName(name)
	if err != nil {
		return fmt.Errorf("resolving user %q: %w", name, err)
	}

	if cfg.IsIgnored(identity.Name) {
		logger.Info("user is ignored by configuration, nothing to do", "user", identity.Name)
		return nil
	}

	var published struct{ name, value string }
	setEnv := func(name, value string) {
		published.name, published.value = name, value
		fmt.Printf("%s=%s\n", name, value)
	}

	if err := provision.Provision(
		provision.Identity{Name: identity.Name, UID: identity.UID, GID: identity.GID},
		cfg,
		setEnv,
	); err != nil {
		return fmt.Errorf("provisioning namespaces for %q: %w", identity.Name, err)
	}

	sysctl.Apply(cfg.Sysctl, logger)

	logger.Info("provisioned namespaces", "user", identity.Name, "marker", published.name)
	return nil
}

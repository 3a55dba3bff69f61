package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/workyard-lab/workyard/pkg/cli/config"
	"github.com/workyard-lab/workyard/pkg/utils/logging"
)

func cmdValidate() *cli.Command {
	var orgCfg config.Org

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the organization configuration file",
		Flags:   orgCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := orgCfg.Load()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			logging.Default().Info("Configuration validation passed",
				"org_id", cfg.ID,
				"org_name", cfg.Name,
				"users", len(cfg.Users),
				"teams", len(cfg.Teams),
				"work_types", len(cfg.WorkTypes),
			)
			return nil
		},
	}
}

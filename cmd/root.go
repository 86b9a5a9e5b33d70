package cmd

import (
	"context"
	"fmt"
	"os"

	apperrors "github.com/haierkeys/bonsai-keeper/pkg/errors"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	dir    string // Project root directory // 项目根目录
	config string // Specified configuration file path // 指定要使用的配置文件路径
}

var configDefault string
var flags = new(globalFlags)

var rootCmd = &cobra.Command{
	Use:           "bonsai-keeper",
	Short:         "Bonsai Keeper keeps the maintenance calendar of a bonsai collection",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.dir, "dir", "d", "", "run dir")
	pf.StringVarP(&flags.config, "config", "c", "", "config file")
}

// Execute runs the command tree; c is the default config written on first run
func Execute(c string) {
	configDefault = c
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", apperrors.FromError(err).Error())
		os.Exit(1)
	}
}

// internal/commands/show_config.go
package otune

import (
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mjarrell/otune/internal/appconfig"
)

// showConfigCmd displays the merged configuration after file and flag overrides.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overridden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		fallback := appconfig.Normalize(appconfig.Config{
			Host:           viper.GetString("host"),
			AutoApply:      viper.GetBool("autoApply"),
			Debug:          viper.GetBool("debug"),
			TimeoutSeconds: viper.GetInt("timeout"),
			LogFile:        viper.GetString("logFile"),
			DatasetPath:    viper.GetString("dataset"),
		})
		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), GetConfig(), fallback)

		if DebugEnabled() {
			pp.Println(GetConfig())
		}
	},
}

func init() {
	rootCmd.AddCommand(showConfigCmd)
}

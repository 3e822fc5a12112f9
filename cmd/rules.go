package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scrublog/scrublog/pkg/logger"
	"github.com/scrublog/scrublog/pkg/secrets"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage detection rules",
	Long: `Manage the secret detection rule table.

Custom rules live in ~/.scrublog/rules.json and can be enabled/disabled
by renaming the file (rules.json = enabled, rules.json.disabled = disabled).
When no custom file is active, the built-in rule table is used.

Edit rules.json directly to add custom rules or modify the defaults.`,
}

var rulesInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in rule table to a rules file",
	Long: `Writes the built-in rule table to ~/.scrublog/rules.json.disabled so it
can be edited before enabling. Does nothing if a rules file already exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Init()
		defer logger.Close()
		logger.Info("Running rules init command")

		if secrets.CustomRulesEnabled() {
			fmt.Println("Custom rules already enabled:", secrets.GetRulesPath())
			return nil
		}
		if _, err := os.Stat(secrets.GetDisabledRulesPath()); err == nil {
			fmt.Println("Rules file already exists:", secrets.GetDisabledRulesPath())
			return nil
		}

		if err := secrets.InitializeDefaultRules(); err != nil {
			logger.Error("Failed to initialize rules file: %v", err)
			return fmt.Errorf("failed to initialize rules file: %w", err)
		}

		fmt.Println("✓ Wrote default rules to:", secrets.GetDisabledRulesPath())
		fmt.Println()
		fmt.Println("Edit the file, then activate it with: scrublog rules enable")

		return nil
	},
}

var rulesEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable custom rules",
	Long:  `Enable custom rules by activating the rules file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Init()
		defer logger.Close()
		logger.Info("Running rules enable command")

		if _, err := os.Stat(secrets.GetDisabledRulesPath()); os.IsNotExist(err) {
			if secrets.CustomRulesEnabled() {
				fmt.Println("Custom rules are already enabled.")
				fmt.Println("Config file:", secrets.GetRulesPath())
				return nil
			}
			fmt.Println("No rules file found. Initializing with the built-in rule table...")
			if err := secrets.InitializeDefaultRules(); err != nil {
				logger.Error("Failed to initialize rules file: %v", err)
				return fmt.Errorf("failed to initialize rules file: %w", err)
			}
		}

		if err := secrets.EnableCustomRules(); err != nil {
			logger.Error("Failed to enable custom rules: %v", err)
			return fmt.Errorf("failed to enable custom rules: %w", err)
		}

		fmt.Println("✓ Custom rules enabled")
		fmt.Println()
		fmt.Println("Config file:", secrets.GetRulesPath())
		fmt.Println()
		fmt.Println("To customize rules, edit the config file directly:")
		fmt.Printf("  vim %s\n", secrets.GetRulesPath())
		fmt.Println()

		return nil
	},
}

var rulesDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable custom rules",
	Long:  `Disable custom rules; detection falls back to the built-in rule table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Init()
		defer logger.Close()
		logger.Info("Running rules disable command")

		if err := secrets.DisableCustomRules(); err != nil {
			logger.Error("Failed to disable custom rules: %v", err)
			return fmt.Errorf("failed to disable custom rules: %w", err)
		}

		fmt.Println("✓ Custom rules disabled")
		fmt.Println()
		fmt.Println("Detection will use the built-in rule table.")
		fmt.Println("To re-enable, run: scrublog rules enable")
		fmt.Println()

		return nil
	},
}

var rulesStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show rule configuration status",
	Long:  `Display the active rule table and where it comes from.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Init()
		defer logger.Close()

		fmt.Println("=== Rule Status ===")
		fmt.Println()

		if secrets.CustomRulesEnabled() {
			fmt.Println("Source: ✓ Custom rules")
			fmt.Println("Config:", secrets.GetRulesPath())
		} else {
			fmt.Println("Source: built-in rule table")
			if _, err := os.Stat(secrets.GetDisabledRulesPath()); err == nil {
				fmt.Println("Config:", secrets.GetDisabledRulesPath(), "(disabled)")
			}
		}
		fmt.Println()

		rules, err := secrets.LoadActiveRules()
		if err != nil {
			logger.Error("Failed to load rules: %v", err)
			fmt.Println("Error: failed to load rules")
			fmt.Printf("  %v\n", err)
			return nil
		}

		fmt.Printf("Rules: %d configured\n", len(rules))
		fmt.Println()
		for _, r := range rules {
			gates := ""
			if len(r.Keywords) > 0 {
				gates += " [keywords]"
			}
			if r.Entropy > 0 {
				gates += fmt.Sprintf(" [entropy>=%.1f]", r.Entropy)
			}
			fmt.Printf("  - %s: %s%s\n", r.ID, r.Description, gates)
		}
		fmt.Println()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesInitCmd)
	rulesCmd.AddCommand(rulesEnableCmd)
	rulesCmd.AddCommand(rulesDisableCmd)
	rulesCmd.AddCommand(rulesStatusCmd)
}

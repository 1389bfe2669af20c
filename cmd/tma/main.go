// Command tma files threat-model-assessment findings as JIRA tickets
// and manages the skill documents shipped with this repository.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rhuss/rhuss-claude-marketplace/internal/config"
	"github.com/rhuss/rhuss-claude-marketplace/internal/logging"
)

var cfg *config.Config

func main() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Init(logging.Config{
		Level:     logging.ParseLevel(cfg.Log.Level),
		SentryDSN: cfg.Log.SentryDSN,
		LogFile:   cfg.Log.File,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}

	err = rootCmd.Execute()
	logging.Flush(2 * time.Second)
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tma",
	Short: "Ticket helper for threat model assessments",
	Long: `tma - file threat-model-assessment findings as JIRA tickets.

The assessment itself is performed by an AI assistant following the
threat-model-assessment skill; tma handles the mechanical part: it
renders a structured finding as JIRA wiki markup and drives the
jira-cli client.

Examples:
  tma verify                        # Pre-flight configuration check
  echo '<payload>' | tma create     # File a finding as a ticket
  tma create -f finding.json --web  # From a file, open in browser
  tma comment PROJ-42 "re-checked"  # Append a comment
  tma history                       # Recently created tickets
  tma skills install threat-model-assessment`,
	SilenceUsage: true,
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a ticket from a JSON finding payload",
	Long: `Create a JIRA ticket from a structured finding.

The payload is read from stdin, or from a file with -f. On success the
created issue key is printed on stdout. Nothing is created when
validation or configuration checks fail.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		issueType, _ := cmd.Flags().GetString("type")
		priority, _ := cmd.Flags().GetString("priority")
		web, _ := cmd.Flags().GetBool("web")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		draft, _ := cmd.Flags().GetString("draft")
		return runCreate(createOptions{
			file:      file,
			issueType: issueType,
			priority:  priority,
			web:       web,
			dryRun:    dryRun,
			draftPath: draft,
		})
	},
}

var commentCmd = &cobra.Command{
	Use:   "comment <issue-key> [text]",
	Short: "Append a comment to an existing ticket (best effort)",
	Long: `Append a comment to an existing ticket.

The text is taken from the arguments, or from stdin when omitted.
Comment failures are reported but do not fail the command, since they
are non-fatal to assessment workflows.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runComment(args[0], args[1:])
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check JIRA configuration and connectivity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerify()
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently created tickets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return runHistory(limit)
	},
}

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Manage AI assistant skills",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSkillsList()
	},
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available skills",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSkillsList()
	},
}

var skillsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Render a skill document in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSkillsShow(args[0])
	},
}

var skillsInstallCmd = &cobra.Command{
	Use:   "install <name>",
	Short: "Install a skill for the AI assistant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		return runSkillsInstall(args[0], dir)
	},
}

func init() {
	createCmd.Flags().StringP("file", "f", "", "read the JSON payload from a file instead of stdin")
	createCmd.Flags().String("type", "", "issue type (default from config, normally Story)")
	createCmd.Flags().String("priority", "", "priority override (Blocker, Critical, Major, Normal, Minor)")
	createCmd.Flags().Bool("web", false, "open the created ticket in the browser")
	createCmd.Flags().Bool("dry-run", false, "print the rendered wiki markup without creating anything")
	createCmd.Flags().String("draft", "", "write a draft file instead of creating a ticket")

	historyCmd.Flags().IntP("limit", "n", 20, "maximum number of tickets to list")

	skillsInstallCmd.Flags().String("dir", "", "installation directory (default from config)")

	skillsCmd.AddCommand(skillsListCmd, skillsShowCmd, skillsInstallCmd)
	rootCmd.AddCommand(createCmd, commentCmd, verifyCmd, historyCmd, skillsCmd)
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/rhuss/rhuss-claude-marketplace/internal/assessment"
	"github.com/rhuss/rhuss-claude-marketplace/internal/jira"
	"github.com/rhuss/rhuss-claude-marketplace/internal/logging"
	"github.com/rhuss/rhuss-claude-marketplace/internal/skills"
	"github.com/rhuss/rhuss-claude-marketplace/internal/store"
)

type createOptions struct {
	file      string
	issueType string
	priority  string
	web       bool
	dryRun    bool
	draftPath string
}

func runCreate(opts createOptions) error {
	var input io.Reader = os.Stdin
	if opts.file != "" {
		f, err := os.Open(opts.file)
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
	}

	req, err := assessment.Parse(input)
	if err != nil {
		return err
	}

	priority := req.Priority
	if opts.priority != "" {
		priority = opts.priority
	}
	if priority == "" {
		priority = cfg.Jira.DefaultPriority
	}
	issueType := opts.issueType
	if issueType == "" {
		issueType = cfg.Jira.DefaultType
	}

	description := assessment.FormatDescription(req)

	if opts.dryRun {
		fmt.Println(description)
		return nil
	}
	if opts.draftPath != "" {
		if err := assessment.WriteDraft(opts.draftPath, req); err != nil {
			return err
		}
		printOK(os.Stderr, "Ticket draft saved to %s", opts.draftPath)
		return nil
	}

	client, err := jira.NewCLIClient(cfg)
	if err != nil {
		return err
	}

	key, err := client.CreateIssue(context.Background(), jira.CreateRequest{
		Summary:     req.Summary,
		Description: description,
		IssueType:   issueType,
		Priority:    priority,
		Component:   req.Component,
		Epic:        req.Epic,
		OpenInWeb:   opts.web,
	})
	if err != nil {
		return err
	}

	recordTicket(key, req.Summary, priority, req.Epic)

	printOK(os.Stderr, "Created %s", client.BrowseURL(key))
	fmt.Println(key)
	return nil
}

// recordTicket appends to local history. History is a convenience; a
// failure here never fails a successful creation.
func recordTicket(key, summary, priority, epic string) {
	st, err := store.New(cfg.Store.Database)
	if err != nil {
		logging.Warn("could not open ticket history", "error", err)
		return
	}
	defer st.Close()
	if _, err := st.RecordTicket(key, summary, priority, epic); err != nil {
		logging.Warn("could not record ticket", "issue", key, "error", err)
	}
}

func runComment(key string, textArgs []string) error {
	body := strings.Join(textArgs, " ")
	if body == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		body = strings.TrimSpace(string(data))
	}
	if body == "" {
		return fmt.Errorf("empty comment text")
	}

	client, err := jira.NewCLIClient(cfg)
	if err != nil {
		return err
	}

	if !jira.CommentBestEffort(context.Background(), client, key, body) {
		printWarn(os.Stderr, "Comment on %s failed (see log); continuing", key)
		return nil
	}
	printOK(os.Stderr, "Comment added to %s", key)
	return nil
}

func runVerify() error {
	if cfg.Token() == "" {
		printFail(os.Stderr, "JIRA API token not found")
		fmt.Fprintln(os.Stderr, "  Export JIRA_API_TOKEN or set jira.token in "+
			"your tma config. Create a personal access token in your tracker profile.")
		return fmt.Errorf("jira not configured")
	}

	client, err := jira.NewCLIClient(cfg)
	if err != nil {
		printFail(os.Stderr, "%v", err)
		return fmt.Errorf("jira not configured")
	}

	if err := client.Verify(context.Background()); err != nil {
		printFail(os.Stderr, "Connection test failed: %v", err)
		return fmt.Errorf("jira not reachable")
	}

	project := client.Project()
	if project == "" {
		project = "unknown"
	}
	printOK(os.Stdout, "JIRA configured: %s (project: %s)", client.Server(), project)
	return nil
}

func runHistory(limit int) error {
	st, err := store.New(cfg.Store.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	tickets, err := st.ListTickets(limit)
	if err != nil {
		return err
	}
	if len(tickets) == 0 {
		fmt.Println(dimStyle.Render("No tickets created yet."))
		return nil
	}

	for _, t := range tickets {
		fmt.Printf("%s  %s  %s %s\n",
			dimStyle.Render(t.CreatedAt.Format("2006-01-02 15:04")),
			keyStyle.Render(t.Key),
			t.Summary,
			dimStyle.Render("("+t.Priority+")"),
		)
	}
	return nil
}

func runSkillsList() error {
	for _, s := range skills.Available {
		fmt.Printf("%s\n    %s\n", keyStyle.Render(s.Name), dimStyle.Render(s.Description))
	}
	return nil
}

func runSkillsShow(name string) error {
	s := skills.ByName(name)
	if s == nil {
		return fmt.Errorf("unknown skill: %s", name)
	}
	doc, err := skills.ReadDoc(s)
	if err != nil {
		return err
	}

	rendered, err := glamour.Render(doc, "dark")
	if err != nil {
		// Fall back to the raw markdown on rendering problems.
		fmt.Println(doc)
		return nil
	}
	fmt.Print(rendered)
	return nil
}

func runSkillsInstall(name, dir string) error {
	s := skills.ByName(name)
	if s == nil {
		return fmt.Errorf("unknown skill: %s", name)
	}
	if dir == "" {
		dir = cfg.Skills.InstallDir
	}

	dest, err := skills.Install(s, dir)
	if err != nil {
		return err
	}
	printOK(os.Stdout, "Installed %s to %s", s.Name, dest)
	return nil
}

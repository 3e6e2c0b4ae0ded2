package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/crudbook/internal/record"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// Exit codes.
const (
	exitGeneric  = 1
	exitDeclined = 2
	exitInvalid  = 3
	exitStorage  = 4
)

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// codeError returns an exitErr for the given code.
func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	store      string
	path       string
	key        string
	yes        bool
	verbose    bool
}

// recordFlags holds the per-field flags of add and edit. set records which
// ones were given explicitly.
type recordFlags struct {
	values map[record.Field]*string
	set    map[record.Field]bool
}

func newRecordFlags() *recordFlags {
	rf := &recordFlags{
		values: make(map[record.Field]*string, len(record.Fields)),
		set:    make(map[record.Field]bool, len(record.Fields)),
	}
	for _, f := range record.Fields {
		rf.values[f] = new(string)
	}
	return rf
}

func (rf *recordFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(rf.values[record.FieldName], "name", "", "Name")
	fs.StringVar(rf.values[record.FieldContact], "contact", "", "Contact number (10 digits)")
	fs.StringVar(rf.values[record.FieldEmail], "email", "", "Email address")
	fs.StringVar(rf.values[record.FieldAge], "age", "", "Age (18-120)")
	fs.StringVar(rf.values[record.FieldPassword], "password", "", "Password (prompted for when omitted)")
}

// collect marks the flags the user actually passed.
func (rf *recordFlags) collect(cmd *cobra.Command) {
	for _, f := range record.Fields {
		rf.set[f] = cmd.Flags().Changed(string(f))
	}
}

// with returns a recordFlags with the given values marked as set; used by tests.
func (rf *recordFlags) with(f record.Field, v string) *recordFlags {
	*rf.values[f] = v
	rf.set[f] = true
	return rf
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitGeneric)
	}
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:           "crudbook",
		Short:         "Manage a list of contact records",
		Long:          "crudbook creates, edits, deletes and searches validated contact records kept in a local key-value store.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, runInteractive)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/crudbook/config.yaml)")
	pf.StringVar(&g.store, "store", "", "Storage backend: sqlite, file or memory")
	pf.StringVar(&g.path, "path", "", "Database file (sqlite) or directory (file)")
	pf.StringVar(&g.key, "key", "", "Storage key holding the record list")
	pf.BoolVarP(&g.yes, "yes", "y", false, "Answer yes to confirmation prompts")
	pf.BoolVar(&g.verbose, "verbose", false, "Log debug output to stderr")

	addFlags := newRecordFlags()
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addFlags.collect(cmd)
			return withApp(cmd, g, func(a *app) error { return runAdd(a, addFlags) })
		},
	}
	addFlags.bind(addCmd)

	var listSearch, listFormat string
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the record table",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app) error { return runList(a, listSearch, listFormat) })
		},
	}
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only show records containing this text")
	listCmd.Flags().StringVar(&listFormat, "format", "table", "Output format: table, json or md")

	editFlags := newRecordFlags()
	editCmd := &cobra.Command{
		Use:   "edit <index|id>",
		Short: "Update fields of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			editFlags.collect(cmd)
			return withApp(cmd, g, func(a *app) error { return runEdit(a, args[0], editFlags) })
		},
	}
	editFlags.bind(editCmd)

	deleteCmd := &cobra.Command{
		Use:     "delete <index|id>",
		Aliases: []string{"rm"},
		Short:   "Delete a record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app) error { return runDelete(a, args[0]) })
		},
	}

	deleteAllCmd := &cobra.Command{
		Use:   "delete-all",
		Short: "Delete every record and the stored list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, runDeleteAll)
		},
	}

	var formEdit string
	formCmd := &cobra.Command{
		Use:   "form",
		Short: "Fill in the record form interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app) error { return runForm(a, formEdit) })
		},
	}
	formCmd.Flags().StringVar(&formEdit, "edit", "", "Index No or ID of the record to edit")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "crudbook", version)
		},
	}

	root.AddCommand(addCmd, listCmd, editCmd, deleteCmd, deleteAllCmd, formCmd, versionCmd)
	return root
}

package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/amonks/taskcli/internal/editor"
	"github.com/amonks/taskcli/internal/ui"
	"github.com/amonks/taskcli/task"
	"github.com/spf13/cobra"
)

// init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty task document",
	Args:  usageArgs(cobra.NoArgs),
	RunE:  runInit,
}

// add
var addCmd = &cobra.Command{
	Use:   "add <description>...",
	Short: "Add a task",
	Long: `Add a task.

The arguments are joined with spaces to form the description. Pass a
single "-" to read the description from stdin. With --edit, or with no
arguments on an interactive terminal, the description is written in
$EDITOR.`,
	Args: usageArgs(cobra.ArbitraryArgs),
	RunE: runAdd,
}

var addEdit bool

// update
var updateCmd = &cobra.Command{
	Use:   "update <id> [description...]",
	Short: "Replace the description of a task",
	Long: `Replace the description of a task.

With --edit, or with no description on an interactive terminal, the task
opens in $EDITOR, where both its status and description can be changed.`,
	Aliases: []string{"edit"},
	Args:    usageArgs(cobra.MinimumNArgs(1)),
	RunE:    runUpdate,
}

var updateEdit bool

// mark
var markCmd = &cobra.Command{
	Use:   "mark <id> <status>",
	Short: "Set the status of a task (todo, in-progress, done)",
	Args:  usageArgs(cobra.ExactArgs(2)),
	RunE:  runMark,
}

// check
var checkCmd = &cobra.Command{
	Use:     "check <id>",
	Short:   "Mark a task as done",
	Aliases: []string{"done"},
	Args:    usageArgs(cobra.ExactArgs(1)),
	RunE:    runSetStatus(task.StatusDone),
}

// progress
var progressCmd = &cobra.Command{
	Use:     "progress <id>",
	Short:   "Mark a task as in progress",
	Aliases: []string{"start"},
	Args:    usageArgs(cobra.ExactArgs(1)),
	RunE:    runSetStatus(task.StatusInProgress),
}

// uncheck
var uncheckCmd = &cobra.Command{
	Use:     "uncheck <id>",
	Short:   "Mark a task as todo",
	Aliases: []string{"reopen"},
	Args:    usageArgs(cobra.ExactArgs(1)),
	RunE:    runSetStatus(task.StatusTodo),
}

// delete
var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete a task",
	Aliases: []string{"rm"},
	Args:    usageArgs(cobra.ExactArgs(1)),
	RunE:    runDelete,
}

// show
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a task",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE:  runShow,
}

var showJSON bool

// list
var listCmd = &cobra.Command{
	Use:   "list [all|todo|in-progress|done]",
	Short: "List tasks",
	Long: `List tasks in the order they were added.

An optional filter argument (or --status) limits the list to one status.`,
	Aliases: []string{"ls"},
	Args:    usageArgs(cobra.MaximumNArgs(1)),
	RunE:    runList,
}

var (
	listStatus string
	listJSON   bool
)

func init() {
	rootCmd.AddCommand(initCmd, addCmd, updateCmd, markCmd, checkCmd, progressCmd,
		uncheckCmd, deleteCmd, showCmd, listCmd)

	addCmd.Flags().BoolVarP(&addEdit, "edit", "e", false, "Write the description in $EDITOR")
	updateCmd.Flags().BoolVarP(&updateEdit, "edit", "e", false, "Edit the task in $EDITOR")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "Filter by status (all, todo, in-progress, done)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	addStatusFlagAliases(listCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	return withStore(cmd, args, func(store *task.Store) error {
		if err := store.Initialize(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized task document at %s\n", store.Path())
		return nil
	})
}

func runAdd(cmd *cobra.Command, args []string) error {
	if useEditor(addEdit, args) {
		parsed, err := editor.EditTask(editor.DataForNewTask(strings.Join(args, " ")))
		if err != nil {
			return err
		}
		return withStore(cmd, args, func(store *task.Store) error {
			created, err := store.Add(parsed.Description)
			if err != nil {
				return err
			}
			if parsed.Status != nil && *parsed.Status != created.Status {
				if created, err = store.SetStatus(created.ID, *parsed.Status); err != nil {
					return err
				}
			}
			printTaskAction(cmd.OutOrStdout(), "Added", created)
			return nil
		})
	}

	if len(args) == 0 {
		return newUsageError("add requires a description or --edit")
	}
	description, err := resolveDescription(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	return withStore(cmd, args, func(store *task.Store) error {
		created, err := store.Add(description)
		if err != nil {
			return err
		}
		printTaskAction(cmd.OutOrStdout(), "Added", created)
		return nil
	})
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	if useEditor(updateEdit, args[1:]) {
		return withStore(cmd, args, func(store *task.Store) error {
			return editTask(cmd, store, id, strings.Join(args[1:], " "))
		})
	}

	if len(args) < 2 {
		return newUsageError("update requires a description or --edit")
	}
	description, err := resolveDescription(args[1:], cmd.InOrStdin())
	if err != nil {
		return err
	}

	return withStore(cmd, args, func(store *task.Store) error {
		updated, err := store.Update(id, description)
		if err != nil {
			return err
		}
		printTaskAction(cmd.OutOrStdout(), "Updated", updated)
		return nil
	})
}

// editTask opens the task in $EDITOR and applies the edited description
// and status. A non-empty description replaces the stored one in the
// editor's starting text.
func editTask(cmd *cobra.Command, store *task.Store, id int, description string) error {
	existing, err := store.Show(id)
	if err != nil {
		return err
	}
	data := editor.DataFromTask(existing)
	if description != "" {
		data.Description = description
	}

	parsed, err := editor.EditTask(data)
	if err != nil {
		return err
	}

	updated, err := store.Update(id, parsed.Description)
	if err != nil {
		return err
	}
	if parsed.Status != nil && *parsed.Status != updated.Status {
		if updated, err = store.SetStatus(id, *parsed.Status); err != nil {
			return err
		}
	}
	printTaskAction(cmd.OutOrStdout(), "Updated", updated)
	return nil
}

// useEditor reports whether a command should open $EDITOR: when asked
// to, or when no description was given on an interactive terminal.
func useEditor(flag bool, descriptionArgs []string) bool {
	return flag || (len(descriptionArgs) == 0 && editor.IsInteractive())
}

func runMark(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	status, err := task.ParseStatus(args[1])
	if err != nil {
		return err
	}
	return setStatus(cmd, args, id, status)
}

func runSetStatus(status task.Status) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		return setStatus(cmd, args, id, status)
	}
}

func setStatus(cmd *cobra.Command, args []string, id int, status task.Status) error {
	return withStore(cmd, args, func(store *task.Store) error {
		updated, err := store.SetStatus(id, status)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Marked task %d %s: %s\n",
			updated.ID, ui.FormatStatus(updated.Status), updated.Description)
		return nil
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	return withStore(cmd, args, func(store *task.Store) error {
		deleted, err := store.Delete(id)
		if err != nil {
			return err
		}
		printTaskAction(cmd.OutOrStdout(), "Deleted", deleted)
		return nil
	})
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	return withStore(cmd, args, func(store *task.Store) error {
		t, err := store.Show(id)
		if err != nil {
			return err
		}
		if showJSON {
			return encodeJSON(cmd.OutOrStdout(), t)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatTaskDetail(*t, detailWidth()))
		return nil
	})
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := listFilter(args, listStatus, cmd.Flags().Changed("status"))
	if err != nil {
		return err
	}

	return withStore(cmd, args, func(store *task.Store) error {
		seq, err := store.List(filter)
		if err != nil {
			return err
		}
		tasks := slices.Collect(seq)

		if listJSON {
			if tasks == nil {
				tasks = []task.Task{}
			}
			return encodeJSON(cmd.OutOrStdout(), tasks)
		}

		counts, err := store.Counts()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprint(out, formatTaskTable(tasks, time.Now()))
		fmt.Fprintln(out, formatCounts(counts))
		return nil
	})
}

// listFilter picks the filter from the positional argument or --status.
func listFilter(args []string, flagValue string, flagSet bool) (task.Filter, error) {
	value := flagValue
	if len(args) > 0 {
		if flagSet && args[0] != flagValue {
			return task.FilterAll, newUsageError("filter %q conflicts with --status %q", args[0], flagValue)
		}
		value = args[0]
	}
	return task.ParseFilter(value)
}

func printTaskAction(w io.Writer, verb string, t *task.Task) {
	fmt.Fprintf(w, "%s task %d: %s\n", verb, t.ID, t.Description)
}

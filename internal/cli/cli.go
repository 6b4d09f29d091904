// Package cli implements employeectl, the terminal front end of the
// employees API.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"employee-management/pkg/client"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	apiURLKey = "api_url"
	apiURLEnv = "EMPLOYEES_API_URL"
)

type cli struct {
	v      *viper.Viper
	in     io.Reader
	out    io.Writer
	logger *zap.Logger
}

func (c *cli) client() *client.Client {
	return client.New(c.v.GetString(apiURLKey), client.WithLogger(c.logger))
}

// NewRootCommand builds employeectl. in feeds confirmation prompts.
func NewRootCommand(in io.Reader, out io.Writer, logger *zap.Logger) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &cli{v: viper.New(), in: in, out: out, logger: logger}

	root := &cobra.Command{
		Use:           "employeectl",
		Short:         "Manage employee records through the employees API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().String("api-url", client.DefaultBaseURL, "base URL of the employees API (env "+apiURLEnv+")")

	c.v.SetDefault(apiURLKey, client.DefaultBaseURL)
	_ = c.v.BindEnv(apiURLKey, apiURLEnv)
	_ = c.v.BindPFlag(apiURLKey, root.PersistentFlags().Lookup("api-url"))

	root.AddCommand(
		c.listCommand(),
		c.getCommand(),
		c.createCommand(),
		c.updateCommand(),
		c.deleteCommand(),
		c.searchCommand(),
		c.statsCommand(),
		c.departmentsCommand(),
	)
	return root
}

// Execute runs employeectl against the process arguments and returns the exit
// code.
func Execute(ctx context.Context, logger *zap.Logger) int {
	root := NewRootCommand(os.Stdin, os.Stdout, logger)
	if err := root.ExecuteContext(ctx); err != nil {
		PrintError(os.Stderr, err)
		return 1
	}
	return 0
}

// PrintError writes err as a single alert line, followed by any per-field
// validation messages.
func PrintError(w io.Writer, err error) {
	var apiErr *client.Error
	if errors.As(err, &apiErr) {
		renderAPIError(w, apiErr)
		return
	}
	fmt.Fprintf(w, "Error: %s\n", err)
}

func parseID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid employee ID %q", raw)
	}
	return id, nil
}

func (c *cli) listCommand() *cobra.Command {
	var params client.ListParams
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := c.client().ListEmployees(cmd.Context(), params)
			if err != nil {
				return err
			}
			renderEmployeeTable(c.out, page.Employees)
			renderPagination(c.out, page.Pagination)
			return nil
		},
	}
	cmd.Flags().IntVar(&params.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&params.Limit, "limit", client.DefaultLimit, "employees per page")
	cmd.Flags().StringVar(&params.Search, "search", "", "filter by name, email, position or department")
	cmd.Flags().StringVar(&params.Department, "department", "", "filter by exact department")
	return cmd
}

func (c *cli) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, err := c.client().GetEmployee(cmd.Context(), id)
			if err != nil {
				return err
			}
			renderEmployeeCard(c.out, *e)
			return nil
		},
	}
}

func (c *cli) createCommand() *cobra.Command {
	var form employeeForm
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := form.input(cmd, client.EmployeeInput{})
			if err != nil {
				return err
			}
			e, err := c.client().CreateEmployee(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Employee created successfully")
			renderEmployeeCard(c.out, *e)
			return nil
		},
	}
	form.bind(cmd)
	return cmd
}

// update pre-fills the form with the stored record, so only the flags given
// change; the API still receives a full replacement.
func (c *cli) updateCommand() *cobra.Command {
	var form employeeForm
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			api := c.client()
			current, err := api.GetEmployee(cmd.Context(), id)
			if err != nil {
				return err
			}
			in, err := form.input(cmd, inputFrom(*current))
			if err != nil {
				return err
			}
			e, err := api.UpdateEmployee(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Employee updated successfully")
			renderEmployeeCard(c.out, *e)
			return nil
		},
	}
	form.bind(cmd)
	return cmd
}

func (c *cli) deleteCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			api := c.client()
			if !yes {
				e, err := api.GetEmployee(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !c.confirm(fmt.Sprintf("Are you sure you want to delete %s?", e.FullName())) {
					fmt.Fprintln(c.out, "Cancelled")
					return nil
				}
			}
			if err := api.DeleteEmployee(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Employee deleted successfully")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (c *cli) searchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search TERM",
		Short: "Search employees by name, email, position or department",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.TrimSpace(args[0])
			found, err := c.client().SearchEmployees(cmd.Context(), term)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Found %d employee(s) matching %q\n\n", len(found), term)
			renderEmployeeTable(c.out, found)
			return nil
		},
	}
}

func (c *cli) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show workforce statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.client().Stats(cmd.Context())
			if err != nil {
				return err
			}
			renderStats(c.out, *s)
			return nil
		},
	}
}

func (c *cli) departmentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "departments [NAME]",
		Short: "List suggested department names, or the employees of one department",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				page, err := c.client().EmployeesByDepartment(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				renderEmployeeTable(c.out, page.Employees)
				renderPagination(c.out, page.Pagination)
				return nil
			}

			names, err := c.client().Departments(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(c.out, n)
			}
			return nil
		},
	}
}

func (c *cli) confirm(question string) bool {
	fmt.Fprintf(c.out, "%s [y/N]: ", question)
	answer, _ := bufio.NewReader(c.in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

package console

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/go-pg-admin/filters"
	"github.com/jrsteele09/go-pg-admin/internal/utils"
	"github.com/jrsteele09/go-pg-admin/pgadmin"
	"github.com/jrsteele09/go-pg-admin/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	errNotLoggedIn = errors.New("not logged in: use 'login <email>'")
	errNoPage      = errors.New("no page open: use 'open <page>'")
)

var statsPrinter = message.NewPrinter(language.English)

func (c *CLI) requireLogin() error {
	if !c.sessions.IsAuthenticated() {
		return errNotLoggedIn
	}
	return nil
}

func (c *CLI) requireView() (*view, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	if c.view == nil {
		return nil, errNoPage
	}
	return c.view, nil
}

func (c *CLI) handleLogin(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: login <email> [password]")
	}

	password := ""
	if len(args) == 2 {
		password = args[1]
	} else {
		var err error
		if password, err = c.readPassword("Password: "); err != nil {
			return err
		}
	}

	ctx, cancel := c.context()
	defer cancel()
	profile, err := c.service.Login(ctx, args[0], password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	c.warned = false
	c.view = nil
	c.printf("Welcome, %s (%s). Session valid for %s.\n", profile.Name, profile.Role, c.sessions.TimeUntilExpiry().Round(time.Minute))
	return nil
}

func (c *CLI) readPassword(prompt string) (string, error) {
	if c.RL == nil {
		return "", fmt.Errorf("password required")
	}
	password, err := c.RL.ReadPassword(prompt)
	if err != nil {
		return "", err
	}
	return string(password), nil
}

func (c *CLI) handleLogout(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("usage: logout")
	}
	if err := c.requireLogin(); err != nil {
		return err
	}
	ctx, cancel := c.context()
	defer cancel()
	if err := c.service.Logout(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("Logout request failed")
	}
	c.printf("Logged out.\n")
	return nil
}

func (c *CLI) handleWhoami(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("usage: whoami")
	}
	session, ok := c.sessions.Session()
	if !ok {
		return errNotLoggedIn
	}
	c.printf("%s <%s>\n", session.Profile.Name, session.Profile.Email)
	c.printf("  Role:       %s\n", session.Profile.Role)
	c.printf("  Staff ID:   %s\n", session.Profile.ID)
	if !session.IssuedAt.IsZero() {
		c.printf("  Logged in:  %s\n", session.IssuedAt.Local().Format(time.DateTime))
	}
	if last := utils.Value(session.Profile.LastLogin); !last.IsZero() {
		c.printf("  Last login: %s\n", last.Local().Format(time.DateTime))
	}
	c.printf("  Expires in: %s\n", c.sessions.TimeUntilExpiry().Round(time.Second))
	return nil
}

func (c *CLI) handlePages(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("usage: pages")
	}
	for _, page := range pgadmin.Pages() {
		c.printf("  %-10s %s\n", page.Name, page.Title)
	}
	return nil
}

func (c *CLI) handleOpen(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: open <page>")
	}
	if err := c.requireLogin(); err != nil {
		return err
	}
	page, ok := pgadmin.PageByName(strings.ToLower(args[0]))
	if !ok {
		return fmt.Errorf("unknown page: %s", args[0])
	}

	form, err := filters.NewForm(page.Filters)
	if err != nil {
		return fmt.Errorf("page %s: %w", page.Name, err)
	}
	v := &view{
		page: page,
		form: form,
		table: table.New(page.Columns,
			table.WithMode(page.Mode),
			table.WithPageSize(c.service.PageSize()),
			table.WithSorter(c.sorter),
			table.WithEmptyMessage(fmt.Sprintf("No %s found", strings.ToLower(page.Title))),
		),
		applied: filters.Values{},
	}
	form.Apply(func(values filters.Values) {
		v.applied = values
	})

	c.view = v
	c.printf("%s\n", page.Title)
	return c.load(v, 1)
}

func (c *CLI) handleList(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("usage: list")
	}
	v, err := c.requireView()
	if err != nil {
		return err
	}
	return c.load(v, v.table.Page())
}

// load fetches pageNo of the open page and renders it.
func (c *CLI) load(v *view, pageNo int) error {
	ctx, cancel := c.context()
	defer cancel()

	result, err := c.service.Fetch(ctx, v.page, v.applied, pageNo, v.table.SortState())
	if err != nil {
		return err
	}
	if v.page.Mode == table.ServerPaged {
		v.table.SetServerPage(result.Rows, result.Info)
	} else {
		v.table.SetRows(result.Rows)
		v.table.SetPage(pageNo)
	}
	c.logger.Debug().Str("page", v.page.Name).Int("page_no", v.table.Page()).Msg("Page loaded")
	return v.table.Render(c.out)
}

func (c *CLI) handleFilter(args []string) error {
	v, err := c.requireView()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return v.form.Render(c.out)
	}

	switch args[0] {
	case "show":
		return v.form.Render(c.out)
	case "set":
		if len(args) < 2 {
			return fmt.Errorf("usage: filter set <id> [value]")
		}
		if err := v.form.Set(args[1], strings.Join(args[2:], " ")); err != nil {
			return err
		}
		value, _ := v.form.Value(args[1])
		c.printf("%s = %s\n", args[1], v.form.Schema().Format(args[1], value))
		return nil
	case "apply":
		applied := v.form.Apply(func(values filters.Values) {
			v.applied = values
		})
		if !applied {
			if err := v.form.Render(c.out); err != nil {
				return err
			}
			return fmt.Errorf("filters are not valid")
		}
		return c.load(v, 1)
	case "reset":
		v.form.Reset()
		v.form.Apply(func(values filters.Values) {
			v.applied = values
		})
		return c.load(v, 1)
	default:
		return fmt.Errorf("usage: filter [show|set <id> [value]|apply|reset]")
	}
}

func (c *CLI) handleSort(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: sort <column>")
	}
	v, err := c.requireView()
	if err != nil {
		return err
	}

	before := v.table.SortState()
	if v.table.ToggleSort(args[0]) == before {
		return fmt.Errorf("column %q cannot be sorted", args[0])
	}
	if v.page.Mode == table.ServerPaged {
		return c.load(v, 1)
	}
	return v.table.Render(c.out)
}

func (c *CLI) handlePage(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: page <number>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("invalid page number: %s", args[0])
	}
	v, err := c.requireView()
	if err != nil {
		return err
	}
	return c.goToPage(v, n)
}

func (c *CLI) handleStep(delta int) error {
	v, err := c.requireView()
	if err != nil {
		return err
	}
	return c.goToPage(v, v.table.Page()+delta)
}

func (c *CLI) goToPage(v *view, n int) error {
	v.table.SetPage(n)
	if v.page.Mode == table.ServerPaged {
		return c.load(v, v.table.Page())
	}
	return v.table.Render(c.out)
}

func (c *CLI) handleDecide(args []string, approve bool) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: approve|reject <approval id> [remarks]")
	}
	if err := c.requireLogin(); err != nil {
		return err
	}

	id, remarks := args[0], strings.Join(args[1:], " ")
	ctx, cancel := c.context()
	defer cancel()

	decide := c.service.Reject
	if approve {
		decide = c.service.Approve
	}
	approval, err := decide(ctx, id, remarks)
	if err != nil {
		return err
	}
	c.printf("%s for %s is now %s.\n", approval.ID, approval.MemberName, approval.Status)

	if c.view != nil && c.view.page.Name == "approvals" {
		return c.load(c.view, c.view.table.Page())
	}
	return nil
}

func (c *CLI) handleUpload(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: upload <payment id> <file>")
	}
	if err := c.requireLogin(); err != nil {
		return err
	}

	file, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("failed to open receipt: %w", err)
	}
	defer file.Close()

	ctx, cancel := c.context()
	defer cancel()
	payment, err := c.service.UploadReceipt(ctx, args[0], filepath.Base(args[1]), file)
	if err != nil {
		return err
	}
	c.printf("Receipt stored for %s (%s): %s\n", payment.ID, payment.Status, payment.ReceiptURL)
	return nil
}

func (c *CLI) handleStats(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("usage: stats")
	}
	if err := c.requireLogin(); err != nil {
		return err
	}

	ctx, cancel := c.context()
	defer cancel()
	s, err := c.service.DashboardStats(ctx)
	if err != nil {
		return err
	}

	c.printf("%s", statsPrinter.Sprintf("Members      %d active of %d\n", s.ActiveMembers, s.TotalMembers))
	c.printf("%s", statsPrinter.Sprintf("Beds         %d of %d occupied (%.1f%%)\n", s.OccupiedBeds, s.TotalBeds, s.OccupancyRate()*100))
	c.printf("%s", statsPrinter.Sprintf("Collected    ₹%.0f this month\n", s.CollectedThisMonth))
	c.printf("%s", statsPrinter.Sprintf("Pending      ₹%.0f\n", s.PendingAmount))
	c.printf("%s", statsPrinter.Sprintf("Expenses     ₹%.0f this month\n", s.ExpensesThisMonth))
	c.printf("%s", statsPrinter.Sprintf("Approvals    %d pending\n", s.PendingApprovals))
	return nil
}

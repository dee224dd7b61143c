package console

import "fmt"

// commandOrder is the order commands are listed in help and completion.
var commandOrder = []string{
	"login", "logout", "whoami", "pages", "open", "list", "filter", "sort",
	"page", "next", "prev", "approve", "reject", "upload", "stats", "help", "exit",
}

// commandHelp contains help text for each command.
var commandHelp = map[string]string{
	"login": `Syntax: login <email> [password]
Description: Logs in as a staff member. The password is prompted for when omitted.
Example: login admin@pg.local`,

	"logout": `Syntax: logout
Description: Ends the session on the backend and forgets it locally.`,

	"whoami": `Syntax: whoami
Description: Shows the logged in staff member and when the session expires.`,

	"pages": `Syntax: pages
Description: Lists the pages that can be opened.`,

	"open": `Syntax: open <page>
Description: Opens a list page with its default filters and shows the first page of rows.
Example: open payments`,

	"list": `Syntax: list
Description: Reloads the current page of the open list.`,

	"filter": `Syntax: filter [show|set <id> [value]|apply|reset]
Description: Works with the filters of the open page.
- show: Shows every filter with its current value and any error.
- set <id> [value]: Sets a filter. An omitted value clears it.
  Multi-select values are comma separated, date ranges are FROM..TO.
- apply: Validates the filters and reloads from page 1.
- reset: Restores the default filters and reloads.
Example: filter set dueDate 2024-03-01..2024-03-31`,

	"sort": `Syntax: sort <column>
Description: Sorts by a column. Sorting by the same column again flips the direction.
Example: sort name`,

	"page": `Syntax: page <number>
Description: Moves to a page of the open list.`,

	"next": `Syntax: next
Description: Moves to the next page of the open list.`,

	"prev": `Syntax: prev
Description: Moves to the previous page of the open list.`,

	"approve": `Syntax: approve <approval id> [remarks]
Description: Approves a pending request.
Example: approve apr-001 "Enjoy the trip"`,

	"reject": `Syntax: reject <approval id> [remarks]
Description: Rejects a pending request.`,

	"upload": `Syntax: upload <payment id> <file>
Description: Attaches a receipt to a payment and marks it paid.
Example: upload pay-2403-005 ./receipt.jpg`,

	"stats": `Syntax: stats
Description: Shows occupancy, collections and pending work for the current month.`,

	"help": `Syntax: help [command]
Description: Lists the commands, or shows help for one of them.`,

	"exit": `Syntax: exit | quit
Description: Leaves the console.`,
}

func (c *CLI) handleHelp(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("usage: help [command]")
	}
	if len(args) == 1 {
		command := args[0]
		if command == "quit" {
			command = "exit"
		}
		help, ok := commandHelp[command]
		if !ok {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		c.printf("%s\n", help)
		return nil
	}

	c.printf("Available commands:\n")
	for _, command := range commandOrder {
		c.printf("  %s\n", command)
	}
	c.printf("\nUse 'help <command>' for more information about a specific command.\n")
	return nil
}

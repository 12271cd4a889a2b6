package commands

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/tally-dev/tally/internal/model"
)

// previewRows caps how many candidate records the commit prompt prints.
const previewRows = 20

// terminalPrompter answers pipeline decisions interactively over stdio.
type terminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminalPrompter(in io.Reader, out io.Writer) *terminalPrompter {
	return &terminalPrompter{in: bufio.NewReader(in), out: out}
}

func (p *terminalPrompter) ResolveColumn(field string, available []string) (int, bool) {
	fmt.Fprintf(p.out, "\nCouldn't find column %q. Available columns:\n", field)
	for i, c := range available {
		fmt.Fprintf(p.out, "%d) %s\n", i+1, c)
	}
	fmt.Fprintf(p.out, "Which column should be used for %q? (number, 0 to skip): ", field)

	line, err := p.in.ReadString('\n')
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(available) {
		return 0, false
	}
	return n - 1, true
}

func (p *terminalPrompter) ConfirmSignFlip(negCount, posCount int) bool {
	fmt.Fprintf(p.out, "\nDetected more negative amounts (%d) than positive (%d).\n", negCount, posCount)
	return p.askYesNo("Flip all signs? (Y/N): ")
}

func (p *terminalPrompter) ConfirmCommit(preview []model.TransactionRecord) bool {
	fmt.Fprintf(p.out, "\nCandidate records (%d total):\n\n", len(preview))
	printPreview(p.out, preview)
	return p.askYesNo("\nDoes everything look good? (Y/N): ")
}

func (p *terminalPrompter) askYesNo(prompt string) bool {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}

func printPreview(w io.Writer, records []model.TransactionRecord) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tAMOUNT\tDESCRIPTION\tVENDOR\tCATEGORY\tTAG\tMETHOD")
	for i, r := range records {
		if i == previewRows {
			fmt.Fprintf(tw, "... %d more rows\n", len(records)-previewRows)
			break
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Date, r.Amount.StringFixed(2), r.Description, r.Vendor, r.Category, r.Tag, r.PaymentMethod)
	}
	tw.Flush()
}

// autoPrompter answers pipeline decisions from flags, for headless runs.
type autoPrompter struct {
	flip   bool
	commit bool
}

func (p autoPrompter) ResolveColumn(string, []string) (int, bool) { return 0, false }

func (p autoPrompter) ConfirmSignFlip(int, int) bool { return p.flip }

func (p autoPrompter) ConfirmCommit([]model.TransactionRecord) bool { return p.commit }

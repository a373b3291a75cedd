package interp

import "strings"

// ParsedCommand is a drawing command line split into its keyword and
// arguments.
type ParsedCommand struct {
	Keyword string   // lowercase
	Args    []string // original casing
}

// ParseCommand splits line on whitespace. The first field, lowercased, is
// the keyword.
func ParseCommand(line string) ParsedCommand {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ParsedCommand{}
	}
	return ParsedCommand{
		Keyword: strings.ToLower(fields[0]),
		Args:    fields[1:],
	}
}

// String joins the command back into a line.
func (p ParsedCommand) String() string {
	if len(p.Args) == 0 {
		return p.Keyword
	}
	return p.Keyword + " " + strings.Join(p.Args, " ")
}

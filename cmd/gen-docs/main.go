package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// gen-docs writes shell completions and a roff man page for dizzymouse.

const (
	appName        = "dizzymouse"
	appDescription = "Nudge the mouse pointer by one pixel on a fixed interval so the screen does not lock."
)

type flagDef struct {
	Short string
	Long  string
	Desc  string
}

var flags = []flagDef{
	{Short: "-v", Long: "--version", Desc: "Show version information"},
	{Long: "--debug", Desc: "Write diagnostics to debug.log"},
	{Short: "-h", Long: "--help", Desc: "Show help message"},
}

func main() {
	out := flag.String("out", ".", "Directory to write docs/completions and man into")
	flag.Parse()

	files := map[string]string{
		filepath.Join("docs", "completions", appName+".bash"): renderBash(flags),
		filepath.Join("docs", "completions", "_"+appName):     renderZsh(flags),
		filepath.Join("docs", "completions", appName+".fish"): renderFish(flags),
		filepath.Join("man", appName+".1"):                    renderMan(flags),
	}

	for name, content := range files {
		path := filepath.Join(*out, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			log.Fatal(err)
		}
	}
}

func optionNames(flags []flagDef) []string {
	var opts []string
	for _, f := range flags {
		if f.Short != "" {
			opts = append(opts, f.Short)
		}
		if f.Long != "" {
			opts = append(opts, f.Long)
		}
	}
	return opts
}

func renderBash(flags []flagDef) string {
	var b strings.Builder
	b.WriteString("_" + appName + "() {\n")
	b.WriteString("  local cur opts\n")
	b.WriteString("  COMPREPLY=()\n")
	b.WriteString("  cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("  opts=\"" + strings.Join(optionNames(flags), " ") + "\"\n")
	b.WriteString("  if [[ ${cur} == -* ]] ; then\n")
	b.WriteString("    COMPREPLY=( $(compgen -W \"${opts}\" -- ${cur}) )\n")
	b.WriteString("  fi\n")
	b.WriteString("  return 0\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _" + appName + " " + appName + "\n")
	return b.String()
}

func renderZsh(flags []flagDef) string {
	var b strings.Builder
	b.WriteString("#compdef " + appName + "\n")
	b.WriteString("_arguments")
	for _, f := range flags {
		for _, name := range []string{f.Short, f.Long} {
			if name != "" {
				b.WriteString(fmt.Sprintf(" '%s[%s]'", name, f.Desc))
			}
		}
	}
	b.WriteString(" '1:seconds:'\n")
	return b.String()
}

func renderFish(flags []flagDef) string {
	var b strings.Builder
	b.WriteString("complete -c " + appName + " -f\n")
	for _, f := range flags {
		b.WriteString("complete -c " + appName)
		if f.Short != "" {
			b.WriteString(" -s " + strings.TrimPrefix(f.Short, "-"))
		}
		if f.Long != "" {
			b.WriteString(" -l " + strings.TrimPrefix(f.Long, "--"))
		}
		b.WriteString(" -d \"" + strings.ReplaceAll(f.Desc, "\"", "\\\"") + "\"\n")
	}
	return b.String()
}

func renderMan(flags []flagDef) string {
	var b strings.Builder
	b.WriteString(".TH \"" + strings.ToUpper(appName) + "\" \"1\" \"\" \"" + appName + "\" \"User Commands\"\n")
	b.WriteString(".SH NAME\n" + appName + " \\- " + appDescription + "\n")
	b.WriteString(".SH SYNOPSIS\n.B " + appName + "\n")
	b.WriteString("[\\-v|\\-\\-version] [\\-\\-debug] [\\-h|\\-\\-help] [seconds]\n")
	b.WriteString(".SH DESCRIPTION\n" + appDescription + "\n")
	b.WriteString("The optional \\fIseconds\\fR argument sets the interval; it must be between 1 and 3599 ")
	b.WriteString("and defaults to 55. Invalid values print a warning and fall back to the default. ")
	b.WriteString("Press any key to stop.\n")
	b.WriteString(".SH OPTIONS\n")
	for _, f := range flags {
		var names []string
		for _, name := range []string{f.Short, f.Long} {
			if name != "" {
				names = append(names, strings.ReplaceAll(name, "-", "\\-"))
			}
		}
		b.WriteString(".TP\n\\fB" + strings.Join(names, ", ") + "\\fR\n" + f.Desc + "\n")
	}
	b.WriteString(".SH EXAMPLES\n")
	b.WriteString(".TP\n\\fB" + appName + "\\fR\nMove the pointer every 55 seconds.\n")
	b.WriteString(".TP\n\\fB" + appName + " 10\\fR\nMove the pointer every 10 seconds.\n")
	return b.String()
}

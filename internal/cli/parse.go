package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/andaru/collectxml/internal/config"
	"github.com/andaru/collectxml/record"
	"github.com/andaru/collectxml/recordxml"
	"github.com/andaru/collectxml/survey"
	"github.com/andaru/collectxml/users"
	"github.com/andaru/collectxml/userstore"
)

var parseFlags struct {
	survey       string
	recordSurvey string
	step         string
	failOn       string
	usersDB      string
	tree         bool
}

var parseCmd = &cobra.Command{
	Use:   "parse FILE...",
	Short: "Read record documents",
	Long: `Read each record document against the survey, printing a summary line
and the diagnostics recorded for it. The command fails if the fail-on
expression holds for any document. The expression sees the variables
failures, warnings, hasRecord and filled.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	f := parseCmd.Flags()
	f.StringVar(&parseFlags.survey, "survey", "", "current survey definition (required)")
	f.StringVar(&parseFlags.recordSurvey, "record-survey", "", "survey definition the records were written against")
	f.StringVar(&parseFlags.step, "step", "", "workflow step assigned to records (entry, cleansing, analysis)")
	f.StringVar(&parseFlags.failOn, "fail-on", "", "fail policy expression (default from config)")
	f.StringVar(&parseFlags.usersDB, "users-db", "", "SQLite user database (default from config)")
	f.BoolVar(&parseFlags.tree, "tree", false, "print the record tree")
	_ = parseCmd.MarkFlagRequired("survey")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if parseFlags.step != "" {
		if err := cfg.Parse.Step.UnmarshalText([]byte(parseFlags.step)); err != nil {
			return errors.Wrapf(err, "--step %q", parseFlags.step)
		}
	}
	if parseFlags.failOn != "" {
		cfg.Parse.FailOn = parseFlags.failOn
	}
	if parseFlags.usersDB != "" {
		cfg.Users.Database = parseFlags.usersDB
	}
	policy, err := compilePolicy(cfg.Parse.FailOn)
	if err != nil {
		return err
	}

	current, err := loadSurvey(parseFlags.survey)
	if err != nil {
		return err
	}
	opts := []recordxml.Option{recordxml.WithStep(cfg.Parse.Step)}
	if parseFlags.recordSurvey != "" {
		published, err := loadSurvey(parseFlags.recordSurvey)
		if err != nil {
			return err
		}
		opts = append(opts, recordxml.WithRecordSurvey(published))
	}

	dir, closeDir, err := openDirectory(cfg.Users)
	if err != nil {
		return err
	}
	defer closeDir()
	opts = append(opts, recordxml.WithUserResolver(&users.Resolver{
		Directory: dir,
		Password:  cfg.Users.DefaultPassword,
		Role:      cfg.Users.DefaultRole,
	}))
	u := recordxml.New(current, opts...)

	var failed int
	for _, path := range args {
		res, err := parseFile(cmd, u, path)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), path, res, parseFlags.tree)
		fails, err := policy.Fails(res)
		if err != nil {
			return err
		}
		if fails {
			failed++
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d records failed (%s)", failed, len(args), cfg.Parse.FailOn)
	}
	return nil
}

func loadSurvey(path string) (*survey.Survey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	s, err := survey.LoadXML(f)
	return s, errors.Wrap(err, path)
}

func openDirectory(cfg config.Users) (users.Directory, func(), error) {
	if cfg.Database == "" {
		return users.NewMemoryDirectory(), func() {}, nil
	}
	store, err := userstore.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		if err := store.Close(); err != nil {
			glog.Warningf("closing %s: %v", cfg.Database, err)
		}
	}, nil
}

func parseFile(cmd *cobra.Command, u *recordxml.Unmarshaller, path string) (*recordxml.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	glog.V(1).Infof("parsing %s", path)
	return u.Unmarshal(cmd.Context(), f)
}

func printResult(w io.Writer, path string, res *recordxml.Result, tree bool) {
	if rec := res.Record; rec != nil {
		fmt.Fprintf(w, "%s: %s version %s step %s, %d filled attributes%s, %d warnings, %d failures\n",
			path, rec.Root.Name(), rec.Version, rec.Step, rec.Summary.FilledAttributes,
			entityCounts(rec.Summary), len(res.Warnings), len(res.Failures))
	} else {
		fmt.Fprintf(w, "%s: no record, %d warnings, %d failures\n", path, len(res.Warnings), len(res.Failures))
	}
	for _, d := range res.Warnings {
		fmt.Fprintf(w, "  %s\n", d.Error())
	}
	for _, d := range res.Failures {
		fmt.Fprintf(w, "  %s\n", d.Error())
	}
	if tree && res.Record != nil {
		printTree(w, res.Record.Root, 1)
	}
}

func entityCounts(s record.Summary) string {
	names := make([]string, 0, len(s.EntityCounts))
	for name := range s.EntityCounts {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, ", %d %s", s.EntityCounts[name], name)
	}
	return b.String()
}

func printTree(w io.Writer, n record.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := n.(type) {
	case *record.Entity:
		fmt.Fprintf(w, "%s%s\n", indent, nodeLabel(n))
		for _, c := range n.Children() {
			printTree(w, c, depth+1)
		}
	case *record.Attribute:
		var fields []string
		for _, f := range n.Fields() {
			if f.IsSet() {
				fields = append(fields, f.Name()+"="+f.String())
			}
			if f.Symbol != nil {
				fields = append(fields, f.Name()+"#"+string(f.Symbol.Code()))
			}
		}
		fmt.Fprintf(w, "%s%s %s\n", indent, nodeLabel(n), strings.Join(fields, " "))
	}
}

func nodeLabel(n record.Node) string {
	label := fmt.Sprintf("%s[%d]", n.Name(), n.Index()+1)
	if state, ok := n.State(); ok {
		label += fmt.Sprintf(" state=%d", state)
	}
	return label
}

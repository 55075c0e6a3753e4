package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/etnz/finance"
	"github.com/etnz/finance/config"
	"github.com/etnz/finance/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the commander for shell completion.
//
// Flags are predicted from each subcommand's FlagSet, with dedicated predictors
// for categories, investment types and descriptions already recorded.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{},
	}
	c.VisitAll(func(f *flag.Flag) { root.Flags[f.Name] = predictFlag(f) })
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		sub := &complete.Command{Flags: map[string]complete.Predictor{}}
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		fs.VisitAll(func(f *flag.Flag) { sub.Flags[f.Name] = predictFlag(f) })
		switch cmd.Name() {
		case "topic":
			sub.Args = complete.PredictFunc(predictTopics)
		case "suggest":
			sub.Args = complete.PredictFunc(predictDescriptions)
		}
		root.Sub[cmd.Name()] = sub
	})
	return root
}

func predictFlag(f *flag.Flag) complete.Predictor {
	switch f.Name {
	case "category":
		var names []string
		for c := range finance.ExpenseCategories() {
			names = append(names, c.String())
		}
		return predict.Set(names)
	case "type":
		return predict.Set{strings.ToLower(string(finance.KindSIP)), strings.ToLower(string(finance.KindFD))}
	case "backend":
		return predict.Set{config.BackendFile, config.BackendSQLite}
	case "desc":
		return complete.PredictFunc(predictDescriptions)
	case "data-dir":
		return predict.Dirs("*")
	}
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	return predict.Something
}

func predictTopics(prefix string) []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return topics
}

// predictDescriptions suggests descriptions recorded in the ledger of the configured user.
func predictDescriptions(prefix string) []string {
	s, err := openSession(context.Background())
	if err != nil {
		return nil
	}
	defer s.close()
	return s.Ledger.Suggest(prefix)
}

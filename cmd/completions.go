package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nova728/diary/internal/model"
	"github.com/nova728/diary/internal/output"
	"github.com/nova728/diary/internal/storage"
)

// completionEntryLimit caps the number of entry IDs offered to the shell.
const completionEntryLimit = 50

// completeEntryIDs returns a completion function for entry IDs, newest first.
func completeEntryIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || ctx == nil || ctx.EntryRepo == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	entries, _, err := ctx.EntryRepo.Query(ctx.User, storage.EntryQuery{Limit: completionEntryLimit})
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, e := range entries {
		if strings.HasPrefix(e.ID, toComplete) {
			completions = append(completions, e.ID+"\t"+output.Excerpt(e.Title, 40))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeMoods completes --mood values.
func completeMoods(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var completions []string
	for _, m := range model.Moods {
		if strings.HasPrefix(string(m), toComplete) {
			completions = append(completions, string(m))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeTags completes --tag values from the tags the user already has.
func completeTags(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if ctx == nil || ctx.TagRepo == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	tags, err := ctx.TagRepo.List(ctx.User)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	prefix := strings.ToLower(toComplete)
	var completions []string
	for _, t := range tags {
		if strings.HasPrefix(strings.ToLower(t.Name), prefix) {
			completions = append(completions, t.Name)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completePeriods suggests period arguments for list and stats.
func completePeriods(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	periods := []string{
		"all\tevery entry",
		"today\ttoday's entries",
		"yesterday\tyesterday's entries",
		"week\tthis week",
		"month\tthis month",
		"year\tthis year",
		"last week\tthe previous week",
		"last month\tthe previous month",
		"last year\tthe previous year",
	}

	var filtered []string
	for _, p := range periods {
		if strings.HasPrefix(strings.Split(p, "\t")[0], toComplete) {
			filtered = append(filtered, p)
		}
	}
	return filtered, cobra.ShellCompDirectiveNoFileComp
}

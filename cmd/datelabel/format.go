package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cpucorecore/datelabel/internal/format"
)

func newFormatCmd() *cobra.Command {
	var (
		tz           string
		strict       bool
		invalidLabel string
	)

	cmd := &cobra.Command{
		Use:   "format VALUE...",
		Short: "Print one label per value; integers are epoch milliseconds",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := format.ResolveTimezone(tz)
			if err != nil {
				return err
			}
			labels := format.NewDateLabel(format.WithLocation(loc), format.WithInvalidLabel(invalidLabel))

			out := cmd.OutOrStdout()
			for _, arg := range args {
				value := argValue(arg)
				if !strict {
					fmt.Fprintln(out, labels.Format(value))
					continue
				}
				label, err := labels.FormatE(value)
				if err != nil {
					return fmt.Errorf("%q: %w", arg, err)
				}
				fmt.Fprintln(out, label)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tz, "tz", "", "IANA timezone to render in (default: host zone)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on the first value that is not a date")
	cmd.Flags().StringVar(&invalidLabel, "invalid-label", format.DefaultInvalidLabel, "placeholder printed for values that are not dates")
	return cmd
}

func argValue(arg string) any {
	if ms, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return ms
	}
	return arg
}

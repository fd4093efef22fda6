package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/scottcagno/robinhood/pkg/hasher"
	"github.com/scottcagno/robinhood/pkg/hashset/openaddr"
	"github.com/spf13/cobra"
)

var scenarioKeys = []int{12497, 28754, 34678, 45500, 56699, 67891, 70011, 81209}

func parseKeys(args []string) ([]int, error) {
	if len(args) == 0 {
		return scenarioKeys, nil
	}
	keys := make([]int, len(args))
	for i, arg := range args {
		k, err := strconv.Atoi(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "rhbench: bad key %q", arg)
		}
		keys[i] = k
	}
	return keys, nil
}

// printTable writes one line per live slot followed by the table stats
func printTable(w io.Writer, s *openaddr.Set[int]) error {
	var err error
	s.ForEachLive(func(slot int, key int) bool {
		_, err = fmt.Fprintf(w, "slot %d: %d (displacement %d)\n", slot, key, s.Displacement(key, slot))
		return err == nil
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s.Stats())
	return err
}

func printCommand(opts *globalOptions) *cobra.Command {
	var (
		capacity int
		shift    bool
	)
	cmd := &cobra.Command{
		Use:   "print [keys...]",
		Short: "Add integer keys to a set and print where each one landed",
		RunE: func(cmd *cobra.Command, args []string) error {
			lg, err := opts.logger()
			if err != nil {
				return err
			}
			defer lg.Sync()
			keys, err := parseKeys(args)
			if err != nil {
				return err
			}
			conf := &openaddr.Config[int]{
				Capacity: capacity,
				Hasher:   hasher.Integer[int],
				Logger:   lg,
			}
			if shift {
				conf.Deletion = openaddr.BackwardShift
			}
			s, err := openaddr.NewWithConfig(conf)
			if err != nil {
				return err
			}
			for _, key := range keys {
				s.Add(key)
			}
			return printTable(cmd.OutOrStdout(), s)
		},
	}
	cmd.Flags().IntVar(&capacity, "capacity", openaddr.DefaultSetSize, "initial capacity")
	cmd.Flags().BoolVar(&shift, "backward-shift", false, "use backward shift deletion")
	return cmd
}

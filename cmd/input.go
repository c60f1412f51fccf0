package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	common "gene_weaver_go/utils"
)

var errNoInput = errors.New("provide a sequence with --seq or a FASTA file with --fasta")

// seqInput is the --seq / --fasta pair shared by the sequence tools.
type seqInput struct {
	seq   string
	fasta string
}

func (in *seqInput) register(cmd *cobra.Command, what string) {
	cmd.Flags().StringVarP(&in.seq, "seq", "s", "", what+" sequence")
	cmd.Flags().StringVarP(&in.fasta, "fasta", "f", "", "path to a (optionally gzipped) FASTA file of "+what+" sequences")
	cmd.MarkFlagsMutuallyExclusive("seq", "fasta")
}

// each calls fn once per input record, streaming FASTA files.
func (in *seqInput) each(fn func(id, seq string) error) error {
	switch {
	case in.seq != "":
		return fn("input", common.CleanSequence(in.seq))
	case in.fasta != "":
		return common.StreamFasta(in.fasta, func(id, seq string) error {
			if id == "" {
				id = "input"
			}
			return fn(id, seq)
		})
	default:
		return errNoInput
	}
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/onflow/starkhash/cmd/util/cmd/common"
	hashblock "github.com/onflow/starkhash/cmd/util/cmd/hash-block"
	verify "github.com/onflow/starkhash/cmd/util/cmd/verify-chain"
	"github.com/onflow/starkhash/config"
)

var rootCmd = &cobra.Command{
	Use:   "util",
	Short: "utility functions for Starknet block commitments and hashes",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return common.InitConfig(cmd.Flags())
	},
	SilenceUsage: true,
}

var RootCmd = rootCmd

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	config.InitFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(verify.Cmd)
	rootCmd.AddCommand(hashblock.Cmd)
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chemandante/qdmr/internal/codeplug"
	"github.com/chemandante/qdmr/internal/userdb"
	"github.com/chemandante/qdmr/internal/uv390"
)

// Version information (set by build flags)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var verbose bool

	logger := logrus.New()

	rootCmd := &cobra.Command{
		Use:   "qdmr",
		Short: "Codeplug configuration tool for DMR radios",
		Long: `Codeplug configuration tool for DMR radios.

Reads the editable codeplug configuration, renders the cross referenced
text export and encodes binary callsign databases for the radio.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			} else {
				logger.SetLevel(logrus.InfoLevel)
			}
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(newExportCmd(logger))
	rootCmd.AddCommand(newEncodeDBCmd(logger))
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newExportCmd(logger *logrus.Logger) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <config.yaml>",
		Short: "Render a codeplug configuration as cross referenced text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open configuration: %w", err)
			}
			defer in.Close()

			cfg, err := codeplug.ReadYAML(in)
			if err != nil {
				return err
			}
			logger.WithFields(logrus.Fields{
				"channels": cfg.Channels().Count(),
				"contacts": cfg.Contacts().Count(),
				"zones":    cfg.Zones().Count(),
			}).Debug("Parsed configuration")

			out := io.Writer(os.Stdout)
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output: %w", err)
				}
				defer f.Close()
				out = f
			}

			writer := &codeplug.ConfWriter{}
			if err := writer.Write(cfg, out); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func newEncodeDBCmd(logger *logrus.Logger) *cobra.Command {
	var (
		output string
		limit  int
		ownID  uint32
		dup    string
	)

	cmd := &cobra.Command{
		Use:   "encode-db <users.json>",
		Short: "Encode a callsign database image from a user database",
		Long: `Encode a callsign database image from a user database.

The user database is validated and de-duplicated, optionally ordered by
closeness to the operator's own DMR ID, and packed into the fixed size
binary image the radio searches at receive time. When the source exceeds
the device capacity only the highest priority records are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := userdb.ParseDuplicatePolicy(dup)
			if err != nil {
				return err
			}

			in, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open user database: %w", err)
			}
			defer in.Close()

			users, err := userdb.Read(in)
			if err != nil {
				return err
			}
			logger.WithField("records", len(users)).Debug("Loaded user database")

			users, err = userdb.Prepare(users, policy)
			if err != nil {
				return err
			}
			if ownID != 0 {
				userdb.OrderByCloseness(users, ownID)
			}

			image, result, err := uv390.Encode(userdb.StaticSource(users), uv390.Selection{Limit: limit})
			if err != nil {
				return fmt.Errorf("encoding failed: %w", err)
			}
			if result.Truncated {
				logger.WithFields(logrus.Fields{
					"encoded": result.Encoded,
					"dropped": result.Dropped,
				}).Warn("User database exceeds capacity, encoded a subset")
			} else {
				logger.WithField("encoded", result.Encoded).Info("Encoded callsign database")
			}

			if err := os.WriteFile(output, image, 0o644); err != nil {
				return fmt.Errorf("failed to write image: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "callsigns.bin", "Output image file")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Encode at most N records (0 = device capacity)")
	cmd.Flags().Uint32Var(&ownID, "own-id", 0, "Order records by closeness to this DMR ID")
	cmd.Flags().StringVar(&dup, "dup", "first", "Duplicate ID policy: first, last or reject")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("qdmr %s (built %s, commit %s)\n", Version, BuildTime, GitCommit)
		},
	}
}

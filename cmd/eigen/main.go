package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Eigen-OS/eigen-os/internal/domain"
	"github.com/Eigen-OS/eigen-os/internal/dto"
	"github.com/Eigen-OS/eigen-os/internal/validation"
)

const cliVersion = "0.1.0"

// errUsage marks invocation errors so main can exit 2 instead of 1.
var errUsage = errors.New("usage error")

var rootCmd = &cobra.Command{
	Use:   "eigen",
	Short: "Eigen-OS System API CLI",
	Long: `Command-line client for the Eigen-OS System API.
Submit quantum jobs, inspect their status and results, and browse the
device catalog. The server address comes from --addr or EIGEN_API_ADDR;
authentication uses --api-key or EIGEN_API_KEY.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		var apiErr *apiError
		if errors.As(err, &apiErr) {
			if len(apiErr.Violations) > 0 {
				printViolations(apiErr.Violations)
			}
			os.Exit(1)
		}
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("EIGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("addr", "EIGEN_API_ADDR")
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().String("addr", "http://127.0.0.1:50051", "System API address")
	rootCmd.PersistentFlags().String("api-key", "", "API key")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	_ = viper.BindPFlag("addr", rootCmd.PersistentFlags().Lookup("addr"))
	_ = viper.BindPFlag("api-key", rootCmd.PersistentFlags().Lookup("api-key"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func registerCommands() {
	rootCmd.AddCommand(submitCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(cancelCmd())
	rootCmd.AddCommand(resultCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(devicesCmd())
	rootCmd.AddCommand(versionCmd())
}

func submitCmd() *cobra.Command {
	var name, target, entrypoint, sourceFile, qasmFile, qasmVersion, qfsRef string
	var shots int64
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a job",
		Long: `Submit a job for execution on a target device. The program is given
as exactly one of an Eigen-Lang source file (--source-file), an OpenQASM
file (--qasm-file), or a reference to a pre-compiled program in QFS
(--qfs-ref).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.SubmitJobRequest{
				Name:   name,
				Target: target,
				Shots:  shots,
			}

			programs := 0
			if sourceFile != "" {
				programs++
			}
			if qasmFile != "" {
				programs++
			}
			if qfsRef != "" {
				programs++
			}
			if programs > 1 {
				return fmt.Errorf("%w: at most one of --source-file, --qasm-file, --qfs-ref", errUsage)
			}

			switch {
			case sourceFile != "":
				src, err := os.ReadFile(sourceFile)
				if err != nil {
					return fmt.Errorf("%w: %v", errUsage, err)
				}
				req.EigenLang = &dto.EigenLangProgram{Entrypoint: entrypoint, Source: string(src)}
			case qasmFile != "":
				src, err := os.ReadFile(qasmFile)
				if err != nil {
					return fmt.Errorf("%w: %v", errUsage, err)
				}
				req.QASM = &dto.QASMProgram{Source: string(src), Version: qasmVersion}
			case qfsRef != "":
				req.AQORef = &dto.AQORef{QFSRef: qfsRef}
			}

			var resp dto.JobResponse
			if err := newAPIClient().do(cmd.Context(), "/v1/jobs/submit", req, &resp); err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "job name")
	cmd.Flags().StringVar(&target, "target", "", "target device id")
	cmd.Flags().StringVar(&entrypoint, "entrypoint", "", "Eigen-Lang entrypoint")
	cmd.Flags().StringVar(&sourceFile, "source-file", "", "Eigen-Lang source file")
	cmd.Flags().StringVar(&qasmFile, "qasm-file", "", "OpenQASM source file")
	cmd.Flags().StringVar(&qasmVersion, "qasm-version", "3.0", "OpenQASM version")
	cmd.Flags().StringVar(&qfsRef, "qfs-ref", "", "QFS reference to a pre-compiled program")
	cmd.Flags().Int64Var(&shots, "shots", 0, "number of shots")
	return cmd
}

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <job_id>",
		Short: "Show job status",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.JobStatusResponse
			req := dto.GetJobStatusRequest{JobID: args[0]}
			if err := newAPIClient().do(cmd.Context(), "/v1/jobs/status", req, &resp); err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	return cmd
}

func cancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel <job_id>",
		Short: "Cancel a job",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.CancelJobResponse
			req := dto.CancelJobRequest{JobID: args[0]}
			if err := newAPIClient().do(cmd.Context(), "/v1/jobs/cancel", req, &resp); err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	return cmd
}

func resultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "result <job_id>",
		Short: "Fetch job results",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.JobResultsResponse
			req := dto.GetJobResultsRequest{JobID: args[0]}
			if err := newAPIClient().do(cmd.Context(), "/v1/jobs/results", req, &resp); err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	return cmd
}

func watchCmd() *cobra.Command {
	var lastEventSeq int64
	cmd := &cobra.Command{
		Use:   "watch <job_id>",
		Short: "Stream job updates",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newAPIClient().stream(cmd.Context(), args[0], lastEventSeq)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			scanner := bufio.NewScanner(resp.Body)
			for scanner.Scan() {
				line := scanner.Text()
				if !strings.HasPrefix(line, "data: ") {
					continue
				}
				payload := strings.TrimPrefix(line, "data: ")
				if viper.GetBool("json") {
					fmt.Println(payload)
					continue
				}
				var update domain.JobUpdate
				if err := json.Unmarshal([]byte(payload), &update); err != nil {
					continue
				}
				fmt.Printf("seq=%d state=%s progress=%.2f %s\n",
					update.EventSeq, update.State, update.Progress, update.Message)
			}
			return scanner.Err()
		},
	}
	cmd.Flags().Int64Var(&lastEventSeq, "last-event-seq", 0, "resume after this event sequence")
	return cmd
}

func devicesCmd() *cobra.Command {
	var backend string
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List available devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.ListDevicesResponse
			req := dto.ListDevicesRequest{BackendType: backend}
			if err := newAPIClient().do(cmd.Context(), "/v1/devices/list", req, &resp); err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(resp)
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"ID", "Name", "Backend", "Status", "Queue", "Est. Wait"})
			for _, d := range resp.Devices {
				tw.AppendRow(table.Row{
					d.DeviceID, d.Name, d.BackendType, d.Status, d.QueueDepth,
					fmt.Sprintf("%ds", d.EstimatedWaitSec),
				})
			}
			tw.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&backend, "backend", "", "backend type filter (simulator, hardware)")
	return cmd
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show client and server version",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := map[string]any{"client": cliVersion}
			var server map[string]any
			if err := newAPIClient().get(cmd.Context(), "/version", &server); err == nil {
				out["server"] = server
			}
			return printJSON(out)
		},
	}
	return cmd
}

// --- helpers ---

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("%w: %s expects %d argument(s), got %d", errUsage, cmd.Name(), n, len(args))
		}
		return nil
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printViolations(violations []validation.FieldViolation) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stderr)
	tw.AppendHeader(table.Row{"Field", "Description"})
	for _, v := range violations {
		tw.AppendRow(table.Row{v.Field, v.Description})
	}
	tw.Render()
}

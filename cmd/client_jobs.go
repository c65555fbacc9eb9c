package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clientJobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspect and trigger maintenance jobs",
}

var clientJobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the maintenance jobs and their last run",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := newAPIClient()
		if err != nil {
			return err
		}
		jobs, err := c.ListJobs(cmd.Context())
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(jobs))
		for _, j := range jobs {
			rows = append(rows, []string{
				j.ID,
				j.Schedule,
				string(j.Status),
				formatAge(j.LastRun),
				formatCount(int64(j.RunCount)),
				formatCount(int64(j.ErrorCount)),
				j.LastError,
			})
		}
		printTable([]string{"ID", "Schedule", "Status", "Last Run", "Runs", "Errors", "Last Error"}, rows)
		return nil
	},
}

var clientJobsRunCmd = &cobra.Command{
	Use:   "run <job-id>",
	Short: "Run a maintenance job now",
	Long:  `Trigger a maintenance job outside its schedule. The job runs on the server, check its outcome with "jobs list".`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newAPIClient()
		if err != nil {
			return err
		}
		if _, err := c.RunJob(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Job %s triggered\n", args[0])
		return nil
	},
}

func init() {
	clientJobsCmd.AddCommand(clientJobsListCmd, clientJobsRunCmd)
	clientCmd.AddCommand(clientJobsCmd)
}

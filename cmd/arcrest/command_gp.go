package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sudo-Ivan/arcgis-rest/pkg/arcrest"
)

var (
	gpParams   []string
	gpAsync    bool
	gpMaxTime  time.Duration
	gpInterval time.Duration
	gpNoCancel bool
)

var gpCmd = &cobra.Command{
	Use:   "gp <gpserver-url> <task-name>",
	Short: "Run a geoprocessing task",
	Long: "Runs a geoprocessing task synchronously, or with --async submits it as a " +
		"job and polls until it finishes or the wait budget is spent.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := arcrest.NewClient(timeout)
		gps, err := arcrest.NewGPService(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}

		task, err := gps.TaskByName(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		if task == nil {
			return fmt.Errorf("task %q not found; service has: %s", args[1], strings.Join(gps.TaskNames(), ", "))
		}

		params, err := parseParams(gpParams)
		if err != nil {
			return err
		}

		if !gpAsync {
			result, err := task.Execute(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printJSON(result)
		}

		job, err := task.SubmitJob(cmd.Context(), params)
		if err != nil {
			return err
		}
		fmt.Printf("Submitted job %s\n", job.JobID())

		results, err := job.WaitForResults(cmd.Context(), arcrest.WaitOptions{
			MaxTime:    gpMaxTime,
			Interval:   gpInterval,
			CancelLong: !gpNoCancel,
			Progress: func(elapsed time.Duration, status, message string) {
				fmt.Printf("%s: %s: %s: %s\n", elapsed, job.JobID(), status, message)
			},
		})
		if err != nil {
			return err
		}

		fmt.Printf("Job %s: %s\n", job.JobID(), job.Status())
		if results == nil {
			return nil
		}
		return printJSON(results)
	},
}

// parseParams turns repeated key=value flags into operation parameters.
func parseParams(pairs []string) (url.Values, error) {
	params := url.Values{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q (want key=value)", pair)
		}
		params.Set(key, value)
	}
	return params, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	gpCmd.Flags().StringArrayVar(&gpParams, "param", nil, "task parameter as key=value (repeatable)")
	gpCmd.Flags().BoolVar(&gpAsync, "async", false, "submit as an asynchronous job and poll")
	gpCmd.Flags().DurationVar(&gpMaxTime, "max-time", arcrest.DefaultMaxWait, "maximum total time to wait for the job")
	gpCmd.Flags().DurationVar(&gpInterval, "interval", arcrest.DefaultPollInterval, "delay between job polls")
	gpCmd.Flags().BoolVar(&gpNoCancel, "no-cancel", false, "leave the job running if the wait budget is spent")
}

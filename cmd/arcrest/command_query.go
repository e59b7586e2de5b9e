package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sudo-Ivan/arcgis-rest/pkg/arcrest"
	"github.com/Sudo-Ivan/arcgis-rest/pkg/convert"
)

var (
	queryWhere     string
	queryOutFields string
	queryFormat    string
)

var queryCmd = &cobra.Command{
	Use:   "query <layer-url>",
	Short: "Query a layer or table and print the features",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := arcrest.NewClient(timeout)
		layer, err := arcrest.NewLayer(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}

		featureSet, err := layer.QueryWhere(cmd.Context(), queryWhere, queryOutFields, nil)
		if err != nil {
			return err
		}

		switch queryFormat {
		case "geojson":
			fc, err := convert.FeatureSetToGeoJSON(featureSet)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(fc, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
		case "csv":
			out, err := convert.FeatureSetToCSV(featureSet)
			if err != nil {
				return err
			}
			fmt.Print(out)
		case "json":
			data, err := json.MarshalIndent(featureSet, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
		default:
			return fmt.Errorf("unsupported output format %q (want geojson, csv, or json)", queryFormat)
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVar(&queryWhere, "where", "1=1", "where clause")
	queryCmd.Flags().StringVar(&queryOutFields, "out-fields", "*", "comma separated list of fields to return")
	queryCmd.Flags().StringVar(&queryFormat, "format", "geojson", "output format: geojson, csv, or json")
}

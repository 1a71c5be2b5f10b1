package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/elnala24/ytapp-project/internal"
)

func jsonOutput(cmd *cobra.Command) bool {
	asJSON, _ := cmd.Flags().GetBool("json")
	return asJSON
}

func printJSON(v any, pretty bool) error {
	data, err := marshalJSON(v, pretty)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func marshalJSON(v any, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("error converting to JSON: %w", err)
	}
	return data, nil
}

func printMarkdown(content string) error {
	rendered, err := internal.RenderMarkdown(content)
	if err != nil {
		return err
	}
	fmt.Print(rendered)
	return nil
}

// rememberTitle keeps the displayed title around for "ytapp titles"
func rememberTitle(title string) {
	if err := internal.SaveLastTitle(config.StateDir, title); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

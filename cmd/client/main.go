package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dentalbot/scribe/pkg/client"
)

func main() {
	urlFlag := flag.String("url", "http://localhost:8080", "form service url")
	tokenFlag := flag.String("token", "", "server token")

	textFlag := flag.String("text", "", "transcript to fill the form from")
	fileFlag := flag.String("file", "", "audio recording to process")
	schemaFlag := flag.Bool("schema", false, "print the form schema")

	flag.Parse()

	ctx := context.Background()

	options := []client.RequestOption{}

	if *tokenFlag != "" {
		options = append(options, client.WithToken(*tokenFlag))
	}

	c := client.New(*urlFlag, options...)

	switch {
	case *schemaFlag:
		schema, err := c.Forms.Schema(ctx)

		if err != nil {
			fail(err)
		}

		for _, f := range schema {
			fmt.Printf("%-28s %s\n", f.Name, f.Description)
		}

	case *fileFlag != "":
		f, err := os.Open(*fileFlag)

		if err != nil {
			fail(err)
		}

		defer f.Close()

		result, err := c.Forms.ProcessAudio(ctx, client.AudioRequest{
			Name:   filepath.Base(*fileFlag),
			Reader: f,
		})

		if err != nil {
			fail(err)
		}

		print(result)

	case *textFlag != "":
		result, err := c.Forms.Fill(ctx, *textFlag)

		if err != nil {
			fail(err)
		}

		print(result)

	default:
		interactive(ctx, c)
	}
}

func interactive(ctx context.Context, c *client.Client) {
	reader := bufio.NewReader(os.Stdin)
	output := os.Stdout

LOOP:
	for {
		output.WriteString(">>> ")
		input, err := reader.ReadString('\n')

		if err != nil {
			return
		}

		input = strings.TrimSpace(input)

		if input == "" {
			continue LOOP
		}

		result, err := c.Forms.Fill(ctx, input)

		if err != nil {
			output.WriteString(err.Error() + "\n")
			continue LOOP
		}

		print(result)

		output.WriteString("\n")
	}
}

func print(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	enc.Encode(v)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

package retrogen

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/retrokit/retrogen/pkg/errors"
	"github.com/retrokit/retrogen/pkg/generate"
	"github.com/retrokit/retrogen/pkg/style"
)

func newGenerateCmd() *cobra.Command {
	var (
		apiName      string
		endpointPath string
		baseURL      string
		identifier   string
		credentials  string
		projectRoot  string
	)

	cmd := &cobra.Command{
		Use:     "generate",
		Short:   MsgGenerateShort,
		Long:    MsgGenerateLong,
		Example: MsgGenerateExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive := isInteractive()

			params := generate.Params{
				APIName:           apiName,
				EndpointPath:      endpointPath,
				BaseURL:           baseURL,
				ServiceIdentifier: identifier,
			}

			if err := fillRequired(&params, interactive); err != nil {
				return err
			}
			if err := resolveIdentifier(&params, interactive); err != nil {
				return err
			}
			if err := resolveCredentials(&params, credentials, cmd.Flags().Changed("credentials"), interactive); err != nil {
				return err
			}

			log.Info().
				Str("api_name", params.APIName).
				Str("project_root", projectRoot).
				Msg("Generating Retrofit client")

			result, err := generate.Run(generate.Options{
				Params:      params,
				ProjectRoot: projectRoot,
			})
			if err != nil {
				return err
			}

			fmt.Printf(MsgBasePackageFormat, style.PathStyle.Render(result.BasePackage))
			fmt.Printf(MsgIdentifierUsing, result.ServiceIdentifier)
			fmt.Println()
			fmt.Println(style.RenderReport(result.Report))
			fmt.Printf(MsgGenerateDone, style.Bold(params.APIName))

			return nil
		},
	}

	cmd.Flags().StringVar(&apiName, "api-name", "", MsgFlagAPIName)
	cmd.Flags().StringVar(&endpointPath, "endpoint-path", "", MsgFlagEndpointPath)
	cmd.Flags().StringVar(&baseURL, "base-url", "", MsgFlagBaseURL)
	cmd.Flags().StringVar(&identifier, "service-identifier", "", MsgFlagIdentifier)
	cmd.Flags().StringVar(&credentials, "credentials", "", MsgFlagCredentials)
	cmd.Flags().StringVar(&projectRoot, "project-root", ".", MsgFlagProjectRoot)

	return cmd
}

func isInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// fillRequired prompts for the required inputs still missing after flag
// parsing. Without a terminal, missing inputs are a usage error.
func fillRequired(params *generate.Params, interactive bool) error {
	missing := func() []string {
		var m []string
		if params.APIName == "" {
			m = append(m, "--api-name")
		}
		if params.EndpointPath == "" {
			m = append(m, "--endpoint-path")
		}
		if params.BaseURL == "" {
			m = append(m, "--base-url")
		}
		return m
	}

	if !interactive {
		if m := missing(); len(m) > 0 {
			return errors.Newf(errors.ErrInvalidInput, MsgErrMissingFlags, strings.Join(m, ", "))
		}
		return nil
	}

	var err error
	if params.APIName == "" {
		if params.APIName, err = pterm.DefaultInteractiveTextInput.Show(MsgPromptAPIName); err != nil {
			return errors.Wrap(err, errors.ErrInvalidInput, "reading api name")
		}
	}
	if params.EndpointPath == "" {
		if params.EndpointPath, err = pterm.DefaultInteractiveTextInput.Show(MsgPromptEndpointPath); err != nil {
			return errors.Wrap(err, errors.ErrInvalidInput, "reading endpoint path")
		}
	}
	if params.BaseURL == "" {
		if params.BaseURL, err = pterm.DefaultInteractiveTextInput.Show(MsgPromptBaseURL); err != nil {
			return errors.Wrap(err, errors.ErrInvalidInput, "reading base url")
		}
	}
	return nil
}

// resolveIdentifier derives the YAML identifier and, in a terminal, offers
// to override it.
func resolveIdentifier(params *generate.Params, interactive bool) error {
	if params.ServiceIdentifier != "" {
		return nil
	}

	derived := generate.DefaultServiceIdentifier(params.APIName)
	if !interactive {
		params.ServiceIdentifier = derived
		return nil
	}

	fmt.Printf(MsgIdentifierHint, style.Bold(derived))
	change, err := pterm.DefaultInteractiveConfirm.WithDefaultValue(false).Show(MsgPromptChangeIdent)
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "reading identifier choice")
	}
	if change {
		if params.ServiceIdentifier, err = pterm.DefaultInteractiveTextInput.Show(MsgPromptIdentifier); err != nil {
			return errors.Wrap(err, errors.ErrInvalidInput, "reading identifier")
		}
	} else {
		params.ServiceIdentifier = derived
	}
	return nil
}

// resolveCredentials parses the credentials flag, or prompts for credential
// fields when the flag was not given and a terminal is attached.
func resolveCredentials(params *generate.Params, flagValue string, flagSet, interactive bool) error {
	if flagSet {
		params.Credentials = generate.ParseCredentials(flagValue)
		if len(params.Credentials) > 0 {
			fmt.Printf(MsgCredentialsUsing, strings.Join(params.Credentials, ", "))
		}
		return nil
	}
	if !interactive {
		return nil
	}

	wants, err := pterm.DefaultInteractiveConfirm.WithDefaultValue(false).Show(MsgPromptCredentials)
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "reading credentials choice")
	}
	if !wants {
		return nil
	}

	fields, err := pterm.DefaultInteractiveTextInput.Show(MsgPromptCredFields)
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "reading credential fields")
	}
	params.Credentials = generate.ParseCredentials(fields)
	if len(params.Credentials) == 0 {
		fmt.Print(style.MutedStyle.Render(MsgCredentialsSkipped))
	}
	return nil
}

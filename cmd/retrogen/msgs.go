package retrogen

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Retrofit client scaffolding for Java projects"
	MsgGenerateShort   = "Generate a Retrofit client into the current project"
	MsgDocsShort       = "Display available documentation topics"
	MsgDocsLong        = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"

	// Prompts
	MsgPromptAPIName      = "API name (PascalCase, e.g. UserService, PaymentGateway)"
	MsgPromptEndpointPath = "Endpoint path (e.g. api/v1/users)"
	MsgPromptBaseURL      = "Base URL (e.g. https://api.example.com/)"
	MsgPromptIdentifier   = "YAML property identifier"
	MsgPromptChangeIdent  = "Do you want to change it?"
	MsgPromptCredentials  = "Does this API require credentials?"
	MsgPromptCredFields   = "Credential field names (comma-separated, e.g. api-key,token)"

	// Status messages
	MsgIdentifierHint     = "Generated YAML property identifier: %s\n"
	MsgIdentifierUsing    = "Using service identifier: %s\n"
	MsgCredentialsUsing   = "Using credentials: %s\n"
	MsgCredentialsSkipped = "No credential fields provided, skipping credentials section\n"
	MsgBasePackageFormat  = "Base package: %s\n"
	MsgGenerateDone       = "\nRetrofit client for %s generated.\n"

	// Error messages
	MsgErrMissingFlags = "missing required flags in non-interactive mode: %s"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagAPIName      = "API name in PascalCase (e.g. UserService)"
	MsgFlagEndpointPath = "Relative endpoint path (e.g. api/v1/users)"
	MsgFlagBaseURL      = "Absolute base URL of the service"
	MsgFlagIdentifier   = "YAML property identifier (default derived from the API name)"
	MsgFlagCredentials  = "Comma-separated credential field names (e.g. api-key,token)"
	MsgFlagProjectRoot  = "Java project root to scaffold into"
)

// Long messages
const (
	MsgRootLong = `retrogen scaffolds Retrofit client boilerplate into an existing Java
project: DTOs, mappers, the client interface and implementation, Spring
configuration entries and the YAML service block, all derived from a
handful of inputs.

The target package is located automatically by searching the project's
source tree for its client marker directory.`

	MsgGenerateLong = `Generate renders the Retrofit client templates into the project's
detected base package, registers the client in the Spring configuration
classes and adds the service block to the local YAML configuration.

Required inputs missing from the flags are prompted for interactively
when running in a terminal. Existing files are never overwritten.`

	MsgGenerateExample = `  # Fully specified, non-interactive
  retrogen generate --api-name UserService \
      --endpoint-path api/v1/users \
      --base-url https://api.example.com/

  # With credentials and a custom identifier
  retrogen generate --api-name PaymentGateway \
      --endpoint-path api/v2/payments \
      --base-url https://payments.example.com/ \
      --service-identifier payments-api \
      --credentials api-key,token`

	MsgCompletionLong = `To load completions:

Bash:
  $ source <(retrogen completion bash)

Zsh:
  $ retrogen completion zsh > "${fpath[1]}/_retrogen"

Fish:
  $ retrogen completion fish | source

PowerShell:
  PS> retrogen completion powershell | Out-String | Invoke-Expression`
)

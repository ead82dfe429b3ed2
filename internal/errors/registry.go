package errors

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// Configuration (V100-V119)
	"V100": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No vdom.json, vdom.yaml or vdom.yml was found in the directory or any of its parents.",
	},
	"V101": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be parsed. Check the syntax around the reported location.",
	},
	"V102": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is outside its allowed range.",
	},
	"V103": {
		Category: CategoryConfig,
		Message:  "Unsupported configuration format",
		Detail:   "Configuration files must end in .json, .yaml or .yml.",
	},

	// Command line (V120-V139)
	"V120": {
		Category: CategoryCLI,
		Message:  "Unknown demo",
		Detail:   "The requested demo does not exist. Run `vdom demo --list` to see the available demos.",
	},
	"V121": {
		Category: CategoryCLI,
		Message:  "Render pass failed",
		Detail:   "The engine reported an error while rendering the demo.",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns all registered codes.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

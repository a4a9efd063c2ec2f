// Package options resolves the fixed catalog of sync performance harness
// options. Each option is either the literal text of an external definition
// (environment, dotenv or YAML file, command line, link-time flag) or
// explicitly absent. A resolved Set never changes.
package options

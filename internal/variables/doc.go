// Package variables turns the raw variable sources (a JSON object, a secret JSON
// object and a "- key: value" line list) into one ordered mapping. Structurally
// invalid JSON fails the whole source; malformed list lines are skipped and
// reported as warnings.
package variables

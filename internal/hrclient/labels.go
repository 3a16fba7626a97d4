package hrclient

import "strings"

// labelRule maps a tool-name substring to its label. Rules are checked in
// order and the first match wins, so more specific substrings must come
// before shorter ones they contain (list_leaves before get_leave, and both
// before any future bare "leave").
type labelRule struct {
	substr string
	label  string
}

var labelRules = []labelRule{
	{"get_employee", "Retrieving employee details..."},
	{"list_employees", "Listing employees..."},
	{"create_employee", "Creating employee record..."},
	{"update_employee", "Updating employee details..."},
	{"delete_employee", "Deleting employee record..."},
	{"apply_leave", "Processing leave application..."},
	{"approve_leave", "Approving leave request..."},
	{"reject_leave", "Rejecting leave request..."},
	{"list_leaves", "Retrieving leave requests..."},
	{"get_leave", "Checking leave status..."},
}

// FriendlyLabel turns a backend tool name into the human-facing title shown
// in the thought-process panel.
func FriendlyLabel(toolName string) string {
	for _, r := range labelRules {
		if strings.Contains(toolName, r.substr) {
			return r.label
		}
	}
	return "Processing request..."
}

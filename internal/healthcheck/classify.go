package healthcheck

import "strings"

// Role is one of the canonical component roles a health-check component can
// be classified into.
type Role int

const (
	// RoleNone means the component matched no classification rule and stays
	// only in the generic component list.
	RoleNone Role = iota
	// RolePayGlobalDatabase is the backing payroll database.
	RolePayGlobalDatabase
	// RoleSelfServiceSoftware is the ESS application itself.
	RoleSelfServiceSoftware
	// RoleSelfServiceDatabase is the ESS database.
	RoleSelfServiceDatabase
	// RoleBridge is the ESS/payroll integration component.
	RoleBridge
	// RoleWFEDatabase is the workflow engine database.
	RoleWFEDatabase
	// RoleBridgeCommunication is the bridge communication channel.
	RoleBridgeCommunication
	// RoleWorkflowEndpoints is the workflow endpoint service.
	RoleWorkflowEndpoints
)

// String returns the string representation of the role.
func (r Role) String() string {
	switch r {
	case RolePayGlobalDatabase:
		return "PayGlobalDatabase"
	case RoleSelfServiceSoftware:
		return "SelfServiceSoftware"
	case RoleSelfServiceDatabase:
		return "SelfServiceDatabase"
	case RoleBridge:
		return "Bridge"
	case RoleWFEDatabase:
		return "WFEDatabase"
	case RoleBridgeCommunication:
		return "BridgeCommunication"
	case RoleWorkflowEndpoints:
		return "WorkflowEndpoints"
	default:
		return "None"
	}
}

// Classify maps a free-text component name onto a canonical role.
// Rules are ordered, case-insensitive substring matches; the first matching
// rule wins.
func Classify(name string) Role {
	n := strings.ToLower(name)

	contains := func(s string) bool { return strings.Contains(n, s) }
	database := func() bool { return contains("database") || contains("db") }

	switch {
	case contains("payglobal") && database():
		return RolePayGlobalDatabase
	case (contains("selfservice") && (contains("software") || contains("app"))) || contains("ess"):
		return RoleSelfServiceSoftware
	case contains("selfservice") && database():
		return RoleSelfServiceDatabase
	case contains("bridge") && !contains("communication"):
		return RoleBridge
	case contains("wfe") && database():
		return RoleWFEDatabase
	case (contains("bridge") && contains("communication")) || contains("communication"):
		return RoleBridgeCommunication
	case contains("workflow") && contains("endpoint"):
		return RoleWorkflowEndpoints
	default:
		return RoleNone
	}
}

// assignRoles fills the result's named component slots from its generic
// component list. When several components classify onto the same role the
// slot keeps the last one processed.
func assignRoles(r *Result) {
	for i := range r.Components {
		c := &r.Components[i]
		switch Classify(c.Name) {
		case RolePayGlobalDatabase:
			r.PayGlobalDatabase = c
		case RoleSelfServiceSoftware:
			r.SelfServiceSoftware = c
		case RoleSelfServiceDatabase:
			r.SelfServiceDatabase = c
		case RoleBridge:
			r.Bridge = c
		case RoleWFEDatabase:
			r.WFEDatabase = c
		case RoleBridgeCommunication:
			r.BridgeCommunication = c
		case RoleWorkflowEndpoints:
			r.WorkflowEndpoints = c
		}
	}
}

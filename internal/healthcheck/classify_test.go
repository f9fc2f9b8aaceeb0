package healthcheck

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		expected Role
	}{
		{"PayGlobal Database", RolePayGlobalDatabase},
		{"PayGlobal DB", RolePayGlobalDatabase},
		{"payglobal database connection", RolePayGlobalDatabase},
		{"SelfService Software", RoleSelfServiceSoftware},
		{"SelfService App", RoleSelfServiceSoftware},
		{"ESS Web Application", RoleSelfServiceSoftware},
		{"SelfService Database", RoleSelfServiceDatabase},
		{"SelfService DB", RoleSelfServiceDatabase},
		{"Bridge", RoleBridge},
		{"Bridge Service", RoleBridge},
		{"WFE Database", RoleWFEDatabase},
		{"wfe db", RoleWFEDatabase},
		{"Bridge Communication", RoleBridgeCommunication},
		{"Communication Channel", RoleBridgeCommunication},
		{"Workflow Endpoint Service", RoleWorkflowEndpoints},
		{"Workflow Endpoints", RoleWorkflowEndpoints},
		{"Generic Cache", RoleNone},
		{"", RoleNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.name); got != tt.expected {
				t.Errorf("Classify(%q) = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}
}

func TestAssignRolesUnmatchedStaysGeneric(t *testing.T) {
	r := &Result{Components: []Component{
		{Name: "Generic Cache", Status: ComponentHealthy},
	}}
	assignRoles(r)

	if r.PayGlobalDatabase != nil || r.SelfServiceSoftware != nil || r.Bridge != nil {
		t.Error("unmatched component must not populate any named slot")
	}
	if len(r.Components) != 1 {
		t.Errorf("unmatched component must stay in the generic list, got %d", len(r.Components))
	}
}

func TestAssignRolesLastMatchWins(t *testing.T) {
	r := &Result{Components: []Component{
		{Name: "PayGlobal DB primary", Status: ComponentHealthy},
		{Name: "PayGlobal DB replica", Status: ComponentUnhealthy},
	}}
	assignRoles(r)

	if r.PayGlobalDatabase == nil {
		t.Fatal("PayGlobalDatabase slot should be populated")
	}
	if r.PayGlobalDatabase.Name != "PayGlobal DB replica" {
		t.Errorf("slot should hold the last processed component, got %q", r.PayGlobalDatabase.Name)
	}
}

func TestAssignRolesAllSlots(t *testing.T) {
	r := &Result{Components: []Component{
		{Name: "PayGlobal Database", Status: ComponentHealthy},
		{Name: "SelfService Software", Status: ComponentHealthy},
		{Name: "SelfService Database", Status: ComponentHealthy},
		{Name: "Bridge", Status: ComponentHealthy},
		{Name: "WFE Database", Status: ComponentHealthy},
		{Name: "Bridge Communication", Status: ComponentHealthy},
		{Name: "Workflow Endpoints", Status: ComponentHealthy},
	}}
	assignRoles(r)

	slots := []*Component{
		r.PayGlobalDatabase,
		r.SelfServiceSoftware,
		r.SelfServiceDatabase,
		r.Bridge,
		r.WFEDatabase,
		r.BridgeCommunication,
		r.WorkflowEndpoints,
	}
	for i, slot := range slots {
		if slot == nil {
			t.Errorf("slot %d should be populated", i)
			continue
		}
		if slot.Status != ComponentHealthy {
			t.Errorf("slot %d status = %v, want Healthy", i, slot.Status)
		}
	}
}

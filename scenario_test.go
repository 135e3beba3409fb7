package openrealm

import "testing"

func TestScenarios(t *testing.T) {
	for _, s := range AllScenarios() {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			RunScenario(t, s)
		})
	}
}

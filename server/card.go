package server

import (
	"github.com/a2aproject/a2a-go/a2a"
)

// Card metadata advertised by the purple agent.
const (
	AgentName        = "FHIR Purple Agent (Messaging)"
	AgentDescription = "Agent that answers medical questions using FHIR data via A2A messaging"
	AgentVersion     = "1.0.0"

	SkillID          = "fhir_task_fulfillment"
	SkillName        = "FHIR Task Fulfillment"
	SkillDescription = "Answers healthcare questions delegated by an evaluating agent"
)

// NewAgentCard builds the agent card served at AgentCardPath.
func NewAgentCard(cfg Config) *a2a.AgentCard {
	return &a2a.AgentCard{
		Name:               AgentName,
		Description:        AgentDescription,
		URL:                cfg.PublicURL(),
		Version:            AgentVersion,
		ProtocolVersion:    "0.3.0",
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text"},
		Skills: []a2a.AgentSkill{{
			ID:          SkillID,
			Name:        SkillName,
			Description: SkillDescription,
			Tags:        []string{"fhir", "medical", "healthcare"},
			Examples:    []string{"What is the most recent HbA1c result for patient S6426560?"},
		}},
		Capabilities: a2a.AgentCapabilities{
			Streaming: true,
		},
		PreferredTransport: a2a.TransportProtocolJSONRPC,
	}
}

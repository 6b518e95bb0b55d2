// Package kafka provides the producer and consumer used for compliance
// alert fan-out.
package kafka

// Topic names.  All platform topics share the "spac." prefix.
const (
	TopicComplianceAlerts = "spac.compliance.alerts"
	TopicEntityUpdates    = "spac.entity.updates"
)

// AllTopics lists every topic the platform produces to or consumes from.
var AllTopics = []string{
	TopicComplianceAlerts,
	TopicEntityUpdates,
}

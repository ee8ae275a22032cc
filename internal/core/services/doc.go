// Package services implements the driving ports: the ingestion pipeline
// and the query orchestrator. Services hold the pipeline semantics and
// talk to storage, embedding and generation only through driven ports.
package services

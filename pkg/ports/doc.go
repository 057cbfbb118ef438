/*
Package ports defines the driven ports (interfaces) of the quote flow.

These interfaces decouple the wizard from the services it talks to, so the
same wizard runs against a simulated backend in development and a real lead
queue in production.

# Key Interfaces

  - Submitter: accepts a completed lead (simulated delay, Redis queue, ...).
  - DistributedLocker: guards a lead against duplicate acceptance across replicas.
*/
package ports

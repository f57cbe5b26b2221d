// Package adapters defines the narrow interfaces the workflow kernel uses to
// reach collaborators that live outside the kernel's scope: the LLM used for
// intent classification and field extraction, the venue's room/product
// catalog, the shared calendar, and the templates that turn a step's
// decision into client-facing prose.
//
// Every interface ships with a deterministic, in-memory implementation
// suitable for tests and for running the kernel without any of these
// collaborators configured, following the same interface-with-no-op-default
// shape as internal/notifications.Service.
package adapters

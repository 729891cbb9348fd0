// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/user, domain/todolist,
// domain/task, domain/drag); document addressing lives in domain/docpath.
// This root package holds sentinel errors, the AuthError/StoreError taxonomy,
// validation types, and domain-level interfaces (Action, WriteStager) that
// are shared across all entities.
package domain

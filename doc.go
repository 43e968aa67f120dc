// Package identity is the identity core of the blog platform: it verifies
// user credentials, issues signed session tokens carrying role claims, and
// manages user records through a generic, transactional repository layer.
//
// Persistence:
//   - Repository is a generic query/mutate surface over a single entity
//     type, backed by Bun. Mutations run against the bun.IDB they are handed;
//     inside a unit of work that is the open transaction, so they take effect
//     only when it commits.
//   - RepositoryManager groups the entity repositories and provides the unit
//     of work boundary via RunInTx. Every UserService write performs one
//     staged mutation inside one commit, so a single call can never be
//     partially applied.
//
// Tokens:
//   - TokenIssuer mints HS256 tokens with a name claim, one roles entry per
//     attached role, not-before at issuance, and a fixed 60 minute expiry.
//     The signing key is injected at construction and never reachable as a
//     global.
//
// The HTTP controller and cmd/identityd are thin: marshaling, payload
// validation, and status mapping only. All identity semantics live in this
// package.
package identity

// Package bounds derives the type-parameter requirements of a generated
// encode or decode path.
//
// Every type parameter of a generic declaration must itself be seeded
// encodable (or decodable) for the path to work. Such automatic bounds come
// first, in parameter order, followed by the bounds(...) of the spec and
// then its override_bounds(...). A parameter named in override_bounds loses
// its automatic bound.
//
// Go cannot state "T is encodable with seed Q" as a constraint, so bounds
// are rendered as run-time checks at the top of each generated function.
package bounds

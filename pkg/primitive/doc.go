/*
Package primitive implements the transition animation nodes a synthesized
transition graph is made of.

Each primitive reconstructs one value: Move and Place carry an existing value to
its final location, while Create, CreateArray, CreateReference and
CreateVariable bring a value into existence from its origins. Initialize loads
the baseline snapshot every other primitive animates against, and Recorded is
the node shape a baking pass produces.

Primitives keep their per-run state in a typed Context record and only touch
memory through domain.Environment. When the environment also implements
domain.PathRegistry, they publish their render path there.
*/
package primitive

package utils

// Assert panics with the given message when the condition does not hold.
// It guards internal contracts only; user-reachable paths clamp instead.
func Assert(condition bool, message ...string) {
	if !condition {
		if len(message) == 1 {
			panic(message[0])
		}
		panic("failed assertion")
	}
}

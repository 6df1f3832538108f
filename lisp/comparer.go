package lisp

// Equals reports structural equality: numbers by value, symbols by name,
// booleans by value, lists element-wise. Functions are equal only to
// themselves. Values of different variants are never equal.
func Equals(v1, v2 Value) bool {
	switch t1 := v1.(type) {
	case List:
		t2, isList := v2.(List)
		return isList && sliceEquals(t1, t2)
	case *Closure:
		t2, isClosure := v2.(*Closure)
		return isClosure && t1 == t2
	case *Builtin:
		t2, isBuiltin := v2.(*Builtin)
		return isBuiltin && t1 == t2
	}
	return v1 == v2
}

func sliceEquals(slice1, slice2 List) bool {
	if len(slice1) != len(slice2) {
		return false
	}
	for i := 0; i < len(slice1); i++ {
		if !Equals(slice1[i], slice2[i]) {
			return false
		}
	}
	return true
}

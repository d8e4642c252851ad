package detector

var Resolve = resolve

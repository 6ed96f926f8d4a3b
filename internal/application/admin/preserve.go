package admin

// PreserveAcross toma la proyección get antes de reload y la vuelve a aplicar con
// set después, también cuando reload falla.
func PreserveAcross[T any](get func() T, set func(T), reload func() error) error {
	snap := get()
	defer set(snap)
	return reload()
}

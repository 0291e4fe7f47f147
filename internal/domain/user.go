package domain

// User is an identity record resolved from whichever usuarios table the
// deployment actually has. Columns absent from the resolved table stay
// zero-valued.
type User struct {
	ID           int64
	Nombre       string
	Correo       string
	PasswordHash string
	Contrasena   string
	Area         string
}

// Summary is the user payload returned by the auth endpoints.
type Summary struct {
	Nombre string `json:"nombre"`
	Correo string `json:"correo"`
	Area   string `json:"area"`
}

// Summary strips credential fields for API responses.
func (u User) Summary() Summary {
	return Summary{Nombre: u.Nombre, Correo: u.Correo, Area: u.Area}
}

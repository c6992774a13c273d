package domain

// MenuItem is one entry of the console navigation.
type MenuItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	// Requires is the capability needed to see the entry.
	Requires Capability `json:"-"`
}

var navigation = []MenuItem{
	{Label: "Dashboard", Path: "/dashboard", Requires: CapViewDashboard},
	{Label: "Trabajadores", Path: "/trabajadores", Requires: CapViewDirectory},
	{Label: "Cursos", Path: "/cursos", Requires: CapViewDirectory},
	{Label: "Solicitudes", Path: "/solicitudes", Requires: CapSubmitRequests},
	{Label: "Aspirantes", Path: "/aspirantes", Requires: CapManageApplicants},
	{Label: "Usuarios", Path: "/usuarios", Requires: CapManageUsers},
}

// MenuFor returns the navigation entries visible to the identity.
func MenuFor(id Identity) []MenuItem {
	out := make([]MenuItem, 0, len(navigation))
	for _, item := range navigation {
		if id.Can(item.Requires) {
			out = append(out, item)
		}
	}
	return out
}

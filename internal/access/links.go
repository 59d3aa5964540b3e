package access

import "gotour/internal/domain"

// Link é uma entrada do menu lateral do painel.
type Link struct {
	Name string
	Href string
}

var (
	touristLinks = []Link{
		{Name: "Overview", Href: "/dashboard"},
		{Name: "My Trips", Href: "/dashboard/trips"},
		{Name: "Settings", Href: "/dashboard/settings"},
	}

	guideLinks = []Link{
		{Name: "Overview", Href: "/dashboard"},
		{Name: "My Listings", Href: "/dashboard/listings"},
		{Name: "Create Tour", Href: "/dashboard/create-tour"},
		{Name: "Bookings", Href: "/dashboard/bookings"},
	}

	adminLinks = []Link{
		{Name: "Overview", Href: "/dashboard"},
		{Name: "Manage Users", Href: "/dashboard/admin/users"},
		{Name: "Manage Tours", Href: "/dashboard/admin/tours"},
		{Name: "All Bookings", Href: "/dashboard/admin/bookings"},
	}

	publicLinks = []Link{
		{Name: "Tours", Href: "/tours"},
		{Name: "Login", Href: "/login"},
		{Name: "Register", Href: "/register"},
	}
)

// LinksFor devolve o conjunto de links da sessão. Sessões anônimas ou ainda
// em restauração recebem apenas os links públicos.
func LinksFor(a domain.Access) []Link {
	if !a.Authenticated {
		return clone(publicLinks)
	}
	switch a.Role {
	case domain.RoleGuide:
		return clone(guideLinks)
	case domain.RoleAdmin:
		return clone(adminLinks)
	default:
		return clone(touristLinks)
	}
}

// Dashboard identifica a variante de painel exibida em /dashboard.
type Dashboard string

const (
	DashboardNone    Dashboard = ""
	DashboardTourist Dashboard = "tourist"
	DashboardGuide   Dashboard = "guide"
	DashboardAdmin   Dashboard = "admin"
)

// DashboardFor escolhe a variante pelo role. Todas as roles chegam pelo mesmo
// caminho (/) após o login; só o conteúdo muda.
func DashboardFor(a domain.Access) Dashboard {
	if !a.Authenticated {
		return DashboardNone
	}
	switch a.Role {
	case domain.RoleGuide:
		return DashboardGuide
	case domain.RoleAdmin:
		return DashboardAdmin
	default:
		return DashboardTourist
	}
}

func clone(links []Link) []Link {
	return append([]Link(nil), links...)
}

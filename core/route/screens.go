package route

// Screen is a screen mounted in a Destination's subtree, as a tab when the area has several.
type Screen struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

var (
	loginScreens = []Screen{
		{Name: "Login"},
	}
	studentScreens = []Screen{
		{Name: "Duties", Icon: "checkmark-circle-outline"},
		{Name: "Calendar", Icon: "calendar-outline"},
		{Name: "Profile", Icon: "person-outline"},
		{Name: "Marks", Icon: "bar-chart-outline"},
	}
	teacherScreens = []Screen{
		{Name: "Duties", Icon: "create-outline"},
		{Name: "Calendar", Icon: "calendar-outline"},
		{Name: "Marks", Icon: "bar-chart-outline"},
		{Name: "Profile", Icon: "person-outline"},
	}
)

// Screens returns the screens of d's subtree, in tab order.
func Screens(d Destination) []Screen {
	var screens []Screen
	switch d {
	case StudentArea:
		screens = studentScreens
	case TeacherArea:
		screens = teacherScreens
	default:
		screens = loginScreens
	}
	return append([]Screen(nil), screens...)
}

// Title returns the header title of d's subtree.
func Title(d Destination) string {
	switch d {
	case StudentArea:
		return "Student"
	case TeacherArea:
		return "Teacher"
	default:
		return "Login"
	}
}

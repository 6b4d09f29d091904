package cli

import (
	"fmt"
	"strconv"
	"strings"

	"employee-management/pkg/client"

	"github.com/spf13/cobra"
)

type employeeForm struct {
	firstName  string
	lastName   string
	email      string
	phone      string
	position   string
	department string
	salary     string
	hireDate   string
	address    string
}

func (f *employeeForm) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.firstName, "first-name", "", "first name")
	fl.StringVar(&f.lastName, "last-name", "", "last name")
	fl.StringVar(&f.email, "email", "", "email address")
	fl.StringVar(&f.phone, "phone", "", "phone number, optional")
	fl.StringVar(&f.position, "position", "", "job position")
	fl.StringVar(&f.department, "department", "", "department, e.g. Engineering")
	fl.StringVar(&f.salary, "salary", "", "annual salary, optional")
	fl.StringVar(&f.hireDate, "hire-date", "", "hire date as YYYY-MM-DD")
	fl.StringVar(&f.address, "address", "", "postal address, optional")
}

// input overlays every flag the user set on base.
func (f *employeeForm) input(cmd *cobra.Command, base client.EmployeeInput) (client.EmployeeInput, error) {
	changed := cmd.Flags().Changed
	set := func(flag string, dst *string, val string) {
		if changed(flag) {
			*dst = strings.TrimSpace(val)
		}
	}

	set("first-name", &base.FirstName, f.firstName)
	set("last-name", &base.LastName, f.lastName)
	set("email", &base.Email, f.email)
	set("phone", &base.Phone, f.phone)
	set("position", &base.Position, f.position)
	set("department", &base.Department, f.department)
	set("hire-date", &base.HireDate, f.hireDate)
	set("address", &base.Address, f.address)

	if changed("salary") {
		s := strings.TrimSpace(f.salary)
		if s == "" {
			base.Salary = nil
		} else {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return base, fmt.Errorf("salary %q is not a number", f.salary)
			}
			base.Salary = &v
		}
	}
	return base, nil
}

func inputFrom(e client.Employee) client.EmployeeInput {
	in := client.EmployeeInput{
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Position:   e.Position,
		Department: e.Department,
		Salary:     e.Salary,
		HireDate:   e.HireDate,
	}
	if e.Phone != nil {
		in.Phone = *e.Phone
	}
	if e.Address != nil {
		in.Address = *e.Address
	}
	return in
}

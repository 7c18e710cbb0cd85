package employee_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/clinicore/hr-management/internal"
	"github.com/clinicore/hr-management/internal/employee"
)

var _ = Describe("Lifecycle transitions", func() {
	allStatuses := []employee.Status{
		employee.StatusActive,
		employee.StatusOnLeave,
		employee.StatusSuspended,
		employee.StatusTerminated,
		employee.StatusRetired,
	}

	permitted := map[[2]employee.Status]bool{
		{employee.StatusActive, employee.StatusOnLeave}:      true,
		{employee.StatusActive, employee.StatusSuspended}:    true,
		{employee.StatusActive, employee.StatusTerminated}:   true,
		{employee.StatusActive, employee.StatusRetired}:      true,
		{employee.StatusOnLeave, employee.StatusActive}:      true,
		{employee.StatusOnLeave, employee.StatusTerminated}:  true,
		{employee.StatusSuspended, employee.StatusActive}:    true,
		{employee.StatusSuspended, employee.StatusTerminated}: true,
	}

	It("permits exactly the transitions in the lifecycle table", func() {
		for _, from := range allStatuses {
			for _, to := range allStatuses {
				if from == to {
					continue
				}
				expected := permitted[[2]employee.Status{from, to}]
				Expect(employee.CanTransition(from, to)).To(Equal(expected),
					"transition %s -> %s", from, to)
			}
		}
	})

	It("rejects leaving a terminal status", func() {
		for _, from := range []employee.Status{employee.StatusTerminated, employee.StatusRetired} {
			for _, to := range allStatuses {
				if from == to {
					continue
				}
				err := employee.ValidateTransition(from, to)
				Expect(err).NotTo(BeNil(), "transition %s -> %s", from, to)
				Expect(err.Type).To(Equal(internal.ErrorTypeTransition))
			}
		}
	})

	It("rejects retirement from suspension", func() {
		err := employee.ValidateTransition(employee.StatusSuspended, employee.StatusRetired)
		Expect(err).NotTo(BeNil())
		Expect(err.Code).To(Equal(internal.ErrCodeInvalidTransition))
	})

	It("rejects a no-op transition", func() {
		err := employee.ValidateTransition(employee.StatusActive, employee.StatusActive)
		Expect(err).NotTo(BeNil())
	})

	It("rejects unknown target statuses as validation failures", func() {
		err := employee.ValidateTransition(employee.StatusActive, employee.Status("frozen"))
		Expect(err).NotTo(BeNil())
		Expect(err.Type).To(Equal(internal.ErrorTypeValidation))
	})

	It("allows returning to active from leave and suspension", func() {
		Expect(employee.ValidateTransition(employee.StatusOnLeave, employee.StatusActive)).To(BeNil())
		Expect(employee.ValidateTransition(employee.StatusSuspended, employee.StatusActive)).To(BeNil())
	})
})

var _ = Describe("Employee number generation", func() {
	It("emits the first number of a fresh department-year", func() {
		number, err := employee.NextNumber("CARD", 2024, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(number).To(Equal("CARD20240001"))
	})

	It("increments from the greatest existing number", func() {
		number, err := employee.NextNumber("CARD", 2024, "CARD20240001")
		Expect(err).NotTo(HaveOccurred())
		Expect(number).To(Equal("CARD20240002"))

		number, err = employee.NextNumber("CARD", 2024, "CARD20240419")
		Expect(err).NotTo(HaveOccurred())
		Expect(number).To(Equal("CARD20240420"))
	})

	It("zero-pads the sequence to four digits", func() {
		number, err := employee.NextNumber("HR", 2026, "HR20260099")
		Expect(err).NotTo(HaveOccurred())
		Expect(number).To(Equal("HR20260100"))
	})

	It("uppercases the department code in the prefix", func() {
		number, err := employee.NextNumber("card", 2024, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(number).To(Equal("CARD20240001"))
	})

	It("rejects allocation past the sequence space", func() {
		_, err := employee.NextNumber("CARD", 2024, "CARD20249999")
		Expect(err).To(Equal(employee.ErrNumberSequenceExhausted))
	})

	It("rejects a stored number that does not match the prefix shape", func() {
		_, err := employee.NextNumber("CARD", 2024, "CARD2024XYZ")
		Expect(err).To(HaveOccurred())
	})
})

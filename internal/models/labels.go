package models

// Labels names each model's state variables in layout order, used for
// CSV headers and plot legends.
func (m *SIR) Labels() []string  { return []string{"S", "I", "R"} }
func (m *SIS) Labels() []string  { return []string{"S", "I"} }
func (m *SEIR) Labels() []string { return []string{"S", "E", "I", "R"} }
func (m *SIRD) Labels() []string { return []string{"S", "I", "R", "D"} }

// InfectedIndex locates the infectious compartment in each layout.
func (m *SIR) InfectedIndex() int  { return 1 }
func (m *SIS) InfectedIndex() int  { return 1 }
func (m *SEIR) InfectedIndex() int { return 2 }
func (m *SIRD) InfectedIndex() int { return 1 }
